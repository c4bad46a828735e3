package proposal

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ericoliveiras/simulador-financiamento/internal/currency"
	"github.com/ericoliveiras/simulador-financiamento/internal/finance"
)

// FieldError descreve uma falha de validação em um campo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa as falhas de validação de uma requisição.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "dados inválidos: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsValidationError informa se err é (ou envolve) um ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Mensagens por campo e regra, no padrão do formulário.
var messages = map[string]string{
	"name.min":            "Nome deve ter pelo menos 2 caracteres",
	"email.email":         "Email inválido",
	"phone.phone":         "Telefone inválido",
	"propertyValue.gt":    "Valor do imóvel é obrigatório",
	"downPayment.gt":      "Valor da entrada é obrigatório",
	"propertyValue.lte":   "Valor do imóvel acima do limite permitido",
	"downPayment.lte":     "Valor da entrada acima do limite permitido",
	"downPayment.mindown": "Entrada deve ser no mínimo 20% do valor do imóvel",
	"downPayment.maxdown": "Entrada não pode ser maior que o valor do imóvel",
	"financingTerm.min":   "Prazo mínimo de 12 meses",
	"financingTerm.max":   "Prazo máximo de 420 meses",
	"status.oneof":        "Status inválido",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Telefone com pelo menos 10 dígitos, ignorando máscara.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return len(currency.Digits(fl.Field().String())) >= 10
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(TermsInput)
		property := in.PropertyValue.Float64()
		down := in.DownPayment.Float64()
		if property <= 0 || down <= 0 {
			return
		}
		if down+1e-9 < finance.MinDownPayment(property) {
			sl.ReportError(in.DownPayment, "downPayment", "DownPayment", "mindown", "")
		}
		if down > property {
			sl.ReportError(in.DownPayment, "downPayment", "DownPayment", "maxdown", "")
		}
	}, TermsInput{})

	return v
}

func (in *SimulationInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
}

// check roda as regras declarativas e acumula as falhas em ve.
func check(s any, ve *ValidationError) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		ve.add("body", err.Error())
		return
	}
	for _, fe := range errs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("Valor inválido (%s)", fe.Tag())
		}
		ve.add(fe.Field(), msg)
	}
}

// Validate valida o formulário de simulação.
func (in *SimulationInput) Validate() error {
	in.normalize()
	ve := &ValidationError{}
	check(in, ve)
	return ve.orNil()
}

// Validate aplica só as regras financeiras, sem os dados do cliente.
func (in TermsInput) Validate() error {
	ve := &ValidationError{}
	check(in, ve)
	return ve.orNil()
}

// derivedTolerance é a diferença máxima aceita entre os valores enviados
// pelo cliente e os recalculados no servidor.
const derivedTolerance = 0.01

func mismatch(sent *float64, computed float64) bool {
	return sent != nil && math.Abs(*sent-computed) > derivedTolerance
}
