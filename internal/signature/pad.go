// /internal/signature/pad.go
package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/fogleman/gg"
)

// Dimensões lógicas da área de assinatura.
const (
	Width  = 600
	Height = 200
)

const lineWidth = 2.0

// ErrEmpty é retornado por Save quando nada foi desenhado.
var ErrEmpty = errors.New("assinatura vazia")

// PointerKind identifica a origem do evento. Mouse e toque são tratados da
// mesma forma.
type PointerKind int

const (
	Mouse PointerKind = iota
	Touch
)

// Event é um evento de ponteiro em coordenadas da tela.
type Event struct {
	Kind    PointerKind
	ClientX float64
	ClientY float64
}

// Rect é a caixa delimitadora da área de assinatura na tela.
type Rect struct {
	Left, Top, Width, Height float64
}

// Point é um ponto em unidades lógicas (0..600 x 0..200).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pad acumula traços à mão livre e os rasteriza em PNG.
type Pad struct {
	bounds     Rect
	strokes    [][]Point
	drawing    bool
	hasContent bool
}

// NewPad cria uma área de assinatura. Um Rect zerado equivale à área lógica
// sem deslocamento nem escala.
func NewPad(bounds Rect) *Pad {
	return &Pad{bounds: bounds}
}

// SetBounds atualiza a caixa delimitadora (ex.: após redimensionar a tela).
func (p *Pad) SetBounds(bounds Rect) {
	p.bounds = bounds
}

// toLogical converte coordenadas da tela para unidades lógicas, relativas à
// caixa delimitadora.
func (p *Pad) toLogical(ev Event) Point {
	x := ev.ClientX - p.bounds.Left
	y := ev.ClientY - p.bounds.Top
	if p.bounds.Width > 0 {
		x = x * Width / p.bounds.Width
	}
	if p.bounds.Height > 0 {
		y = y * Height / p.bounds.Height
	}
	return Point{X: x, Y: y}
}

// PointerDown inicia um traço. Um novo início durante um traço em andamento é
// ignorado.
func (p *Pad) PointerDown(ev Event) {
	if p.drawing {
		return
	}
	p.drawing = true
	p.strokes = append(p.strokes, []Point{p.toLogical(ev)})
}

// PointerMove estende o traço atual. Fora de um traço, não faz nada.
func (p *Pad) PointerMove(ev Event) {
	if !p.drawing {
		return
	}
	last := len(p.strokes) - 1
	p.strokes[last] = append(p.strokes[last], p.toLogical(ev))
	p.hasContent = true
}

// PointerUp encerra o traço atual (também usado ao sair da área).
func (p *Pad) PointerUp() {
	p.drawing = false
}

// HasContent indica se existe ao menos um traço desenhado.
func (p *Pad) HasContent() bool {
	return p.hasContent
}

// Clear descarta todos os traços.
func (p *Pad) Clear() {
	p.strokes = nil
	p.drawing = false
	p.hasContent = false
}

// Replay alimenta a área com traços já em unidades lógicas, passando pelos
// mesmos eventos de ponteiro.
func (p *Pad) Replay(strokes [][]Point) {
	saved := p.bounds
	p.bounds = Rect{}
	defer func() { p.bounds = saved }()

	for _, stroke := range strokes {
		if len(stroke) == 0 {
			continue
		}
		p.PointerDown(Event{ClientX: stroke[0].X, ClientY: stroke[0].Y})
		for _, pt := range stroke[1:] {
			p.PointerMove(Event{ClientX: pt.X, ClientY: pt.Y})
		}
		p.PointerUp()
	}
}

// PNG rasteriza os traços acumulados em uma imagem 600x200 com fundo
// transparente.
func (p *Pad) PNG() ([]byte, error) {
	if !p.hasContent {
		return nil, ErrEmpty
	}

	dc := gg.NewContext(Width, Height)
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(lineWidth)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, stroke := range p.strokes {
		if len(stroke) < 2 {
			continue
		}
		dc.MoveTo(stroke[0].X, stroke[0].Y)
		for _, pt := range stroke[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gerar imagem da assinatura: %w", err)
	}
	return buf.Bytes(), nil
}

// Save devolve a assinatura como data URI PNG. Falha com ErrEmpty quando não
// há conteúdo.
func (p *Pad) Save() (string, error) {
	png, err := p.PNG()
	if err != nil {
		return "", err
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}
