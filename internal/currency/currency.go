// /internal/currency/currency.go
package currency

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol é o prefixo usado em todos os valores monetários (BRL).
const Symbol = "R$"

// Format renderiza um valor no formato monetário pt-BR, ex.: "R$ 1.234,56".
// O arredondamento para duas casas acontece somente aqui.
func Format(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	d := decimal.NewFromFloat(value).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2) // "1234.56"
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	return sign + Symbol + " " + groupThousands(intPart) + "," + fracPart
}

// groupThousands insere "." a cada três dígitos, da direita para a esquerda.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Parse converte um texto monetário (ex.: "R$ 1.234,56") em número.
// Nunca falha: textos inválidos resultam em 0.
//
// A última vírgula é o separador decimal e os demais separadores são de
// milhar. Sem vírgula, todo ponto é separador de milhar ("450.000" vale
// 450000).
func Parse(text string) float64 {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, text)

	normalized := normalize(clean)
	if normalized == "" {
		return 0
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

func normalize(clean string) string {
	if i := strings.LastIndex(clean, ","); i >= 0 {
		intPart := strings.NewReplacer(".", "", ",", "").Replace(clean[:i])
		fracPart := strings.NewReplacer(".", "", ",", "").Replace(clean[i+1:])
		if fracPart == "" {
			return intPart
		}
		return intPart + "." + fracPart
	}
	return strings.ReplaceAll(clean, ".", "")
}

// Digits remove tudo que não for dígito.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// FormatPhone aplica a máscara de telefone brasileira: (XX) XXXXX-XXXX para
// celulares e (XX) XXXX-XXXX para fixos. Outros tamanhos voltam sem alteração.
func FormatPhone(value string) string {
	d := Digits(value)
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return value
	}
}
