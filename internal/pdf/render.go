// /internal/pdf/render.go
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ericoliveiras/simulador-financiamento/internal/currency"
	"github.com/ericoliveiras/simulador-financiamento/internal/model"
	"github.com/ericoliveiras/simulador-financiamento/internal/signature"
)

// Filename é o nome fixo do arquivo oferecido para download.
const Filename = "simulacao-financiamento.pdf"

// Dimensões da página, em pontos.
const (
	pageWidth  = 600.0
	pageHeight = 900.0
)

// RenderError indica que o documento não pôde ser gerado.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return "não foi possível gerar o documento: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error { return e.Err }

type rgb struct{ r, g, b int }

var (
	blue       = rgb{30, 64, 175}
	green      = rgb{34, 197, 94}
	orange     = rgb{251, 146, 60}
	gray       = rgb{71, 85, 105}
	borderGray = rgb{203, 213, 225}
	black      = rgb{0, 0, 0}
)

// Renderer gera o resumo da simulação em PDF com layout fixo.
type Renderer struct {
	AppName  string
	Location *time.Location
	Now      func() time.Time

	uncompressed bool // conteúdo legível, usado nos testes
}

// NewRenderer cria um Renderer com relógio do sistema.
func NewRenderer(appName string, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{AppName: appName, Location: loc, Now: time.Now}
}

// Render gera o PDF da proposta. A assinatura explícita tem precedência sobre
// a que estiver gravada na proposta. A proposta recebida não é alterada.
func (r *Renderer) Render(p model.Proposal, signatureURI string) ([]byte, error) {
	var sigPNG []byte
	if signatureURI == "" && p.HasSignature() {
		signatureURI = *p.Signature
	}
	if signatureURI != "" {
		raw, err := signature.DecodeDataURI(signatureURI)
		if err != nil {
			return nil, &RenderError{Err: err}
		}
		sigPNG = raw
	}

	stamp := p.CreatedAt
	if stamp.IsZero() {
		stamp = r.now()
	}
	stamp = stamp.In(r.location())

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	doc.SetCreationDate(stamp)
	doc.SetModificationDate(stamp)
	doc.SetCatalogSort(true)
	doc.SetCompression(!r.uncompressed)
	doc.SetTitle("Resultado da Simulação", true)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	w := &writer{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	// Cabeçalho
	w.text(40, 870, 10, false, gray, stamp.Format("02/01/2006 15:04:05"))
	w.text(500, 870, 10, false, gray, r.AppName)

	// Título
	w.text(40, 840, 22, true, black, "Resultado da Simulação")
	w.text(40, 820, 12, false, gray, "Confira os detalhes do seu financiamento")

	// Resumo do financiamento
	w.card(30, 600, 540, 200)
	w.text(50, 780, 15, true, black, "Resumo do Financiamento")
	hasRate := p.InterestRate != 0
	rate := formatRate(p.InterestRate)
	if hasRate {
		w.text(50, 765, 10, false, gray, "Dados calculados com taxa de "+rate+" ao ano")
	}

	w.text(60, 740, 10, false, gray, "Valor do Imóvel")
	w.text(340, 740, 10, false, gray, "Entrada")
	w.text(60, 725, 15, true, blue, currency.Format(p.PropertyValue))
	w.text(340, 725, 15, true, green, currency.Format(p.DownPayment))

	w.text(60, 705, 10, false, gray, "Valor Financiado:")
	w.text(180, 705, 10, true, black, currency.Format(p.FinancedAmount))
	w.text(60, 690, 10, false, gray, "Prazo:")
	w.text(180, 690, 10, true, black, fmt.Sprintf("%d meses", p.FinancingTerm))
	if hasRate {
		w.text(60, 675, 10, false, gray, "Taxa de Juros:")
		w.text(180, 675, 10, true, black, rate+" a.a.")
	}

	w.text(60, 655, 10, false, gray, "Parcela Mensal")
	w.text(180, 655, 15, true, gray, currency.Format(p.MonthlyPayment))

	w.text(60, 635, 10, false, gray, "Total a Pagar")
	w.text(180, 635, 12, true, black, currency.Format(p.TotalAmount))
	w.text(340, 635, 10, false, gray, "Total de Juros")
	w.text(440, 635, 12, true, orange, currency.Format(p.TotalInterest()))

	// Dados do cliente
	w.card(30, 400, 540, 120)
	w.text(50, 510, 15, true, black, "Dados do Cliente")
	w.text(50, 495, 10, false, gray, "Informações fornecidas na simulação")

	const left = 60.0
	y := 475.0
	w.text(left, y, 10, false, gray, "Nome")
	w.text(left+60, y, 12, true, black, strings.ToUpper(p.Name))
	y -= 15
	w.text(left, y, 10, false, gray, "Email")
	w.text(left+60, y, 12, true, black, p.Email)
	y -= 15
	w.text(left, y, 10, false, gray, "Telefone")
	w.text(left+60, y, 12, true, black, p.Phone)

	if sigPNG != nil {
		w.text(50, 420, 10, false, gray, "Assinatura do Cliente:")
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader("assinatura", opts, bytes.NewReader(sigPNG))
		doc.ImageOptions("assinatura", 180, pageHeight-400-40, 200, 40, false, opts, 0, "")
	}

	// Rodapé
	w.text(40, 30, 10, false, gray, "Documento gerado digitalmente. Válido sem assinatura manuscrita.")

	if err := doc.Error(); err != nil {
		return nil, &RenderError{Err: err}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Renderer) location() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

// formatRate formata a taxa anual com uma casa decimal, ex.: "12,0%".
func formatRate(rate float64) string {
	return strings.Replace(fmt.Sprintf("%.1f%%", rate*100), ".", ",", 1)
}

// writer converte as coordenadas do layout (origem no canto inferior
// esquerdo) para as do fpdf (origem no canto superior esquerdo).
type writer struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

func (w *writer) text(x, y, size float64, bold bool, c rgb, s string) {
	style := ""
	if bold {
		style = "B"
	}
	w.doc.SetFont("Helvetica", style, size)
	w.doc.SetTextColor(c.r, c.g, c.b)
	w.doc.Text(x, pageHeight-y, w.tr(s))
}

func (w *writer) card(x, y, width, height float64) {
	w.doc.SetDrawColor(borderGray.r, borderGray.g, borderGray.b)
	w.doc.SetFillColor(255, 255, 255)
	w.doc.SetLineWidth(1.5)
	w.doc.Rect(x, pageHeight-y-height, width, height, "FD")
}
