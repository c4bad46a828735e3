package signature

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawStroke(p *Pad, kind PointerKind, pts ...[2]float64) {
	p.PointerDown(Event{Kind: kind, ClientX: pts[0][0], ClientY: pts[0][1]})
	for _, pt := range pts[1:] {
		p.PointerMove(Event{Kind: kind, ClientX: pt[0], ClientY: pt[1]})
	}
	p.PointerUp()
}

func TestSave_EmptyFails(t *testing.T) {
	p := NewPad(Rect{})
	_, err := p.Save()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestClearThenSaveFails(t *testing.T) {
	p := NewPad(Rect{})
	drawStroke(p, Mouse, [2]float64{10, 10}, [2]float64{100, 80})
	require.True(t, p.HasContent())

	p.Clear()
	assert.False(t, p.HasContent())

	_, err := p.Save()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSingleStrokeProducesImage(t *testing.T) {
	p := NewPad(Rect{})
	drawStroke(p, Touch, [2]float64{20, 100}, [2]float64{200, 50}, [2]float64{400, 150})

	uri, err := p.Save()
	require.NoError(t, err)
	require.True(t, len(uri) > len(DataURIPrefix))

	raw, err := DecodeDataURI(uri)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())

	_, _, _, a := img.At(200, 50).RGBA()
	assert.NotZero(t, a, "pixel on the stroke should be painted")
}

func TestDownWithoutMoveHasNoContent(t *testing.T) {
	p := NewPad(Rect{})
	p.PointerDown(Event{ClientX: 5, ClientY: 5})
	p.PointerUp()
	assert.False(t, p.HasContent())
}

func TestMoveOutsideStrokeIgnored(t *testing.T) {
	p := NewPad(Rect{})
	p.PointerMove(Event{ClientX: 5, ClientY: 5})
	assert.False(t, p.HasContent())
}

func TestOverlappingDownIgnored(t *testing.T) {
	p := NewPad(Rect{})
	p.PointerDown(Event{ClientX: 1, ClientY: 1})
	p.PointerDown(Event{ClientX: 50, ClientY: 50})
	p.PointerMove(Event{ClientX: 2, ClientY: 2})
	p.PointerUp()

	require.Len(t, p.strokes, 1)
	assert.Equal(t, []Point{{1, 1}, {2, 2}}, p.strokes[0])
}

func TestMouseAndTouchShareMapping(t *testing.T) {
	bounds := Rect{Left: 100, Top: 40, Width: 300, Height: 100}
	mouse := NewPad(bounds)
	touch := NewPad(bounds)

	drawStroke(mouse, Mouse, [2]float64{100, 40}, [2]float64{250, 90}, [2]float64{400, 140})
	drawStroke(touch, Touch, [2]float64{100, 40}, [2]float64{250, 90}, [2]float64{400, 140})

	assert.Equal(t, mouse.strokes, touch.strokes)
	assert.Equal(t, []Point{{0, 0}, {300, 100}, {600, 200}}, mouse.strokes[0])
}

func TestReplay(t *testing.T) {
	p := NewPad(Rect{Left: 10, Top: 10, Width: 60, Height: 20})
	p.Replay([][]Point{{{0, 0}, {50, 50}}, {}})

	assert.True(t, p.HasContent())
	assert.Equal(t, []Point{{0, 0}, {50, 50}}, p.strokes[0])
	assert.Equal(t, Rect{Left: 10, Top: 10, Width: 60, Height: 20}, p.bounds)
}

func TestDecodeDataURI_Invalid(t *testing.T) {
	_, err := DecodeDataURI("http://example.com/sig.png")
	assert.ErrorIs(t, err, ErrInvalidDataURI)

	_, err = DecodeDataURI(DataURIPrefix + "!!!")
	assert.ErrorIs(t, err, ErrInvalidDataURI)

	_, err = DecodeDataURI(DataURIPrefix + "aGVsbG8=") // "hello"
	assert.ErrorIs(t, err, ErrInvalidDataURI)
}
