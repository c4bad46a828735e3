// /internal/proposal/input.go
package proposal

import (
	"github.com/ericoliveiras/simulador-financiamento/internal/currency"
	"github.com/ericoliveiras/simulador-financiamento/internal/signature"
)

// TermsInput reúne os campos financeiros do formulário.
type TermsInput struct {
	PropertyValue currency.Amount `json:"propertyValue" validate:"gt=0,lte=10000000000"` // finance.MaxPropertyValue
	DownPayment   currency.Amount `json:"downPayment" validate:"gt=0,lte=10000000000"`
	FinancingTerm int             `json:"financingTerm" validate:"min=12,max=420"`
}

// SimulationInput espelha o formulário de simulação enviado pelo cliente.
type SimulationInput struct {
	Name  string `json:"name" validate:"min=2"`
	Email string `json:"email" validate:"email"`
	Phone string `json:"phone" validate:"phone"`
	TermsInput
}

// ProposalInput é o corpo recebido na criação de uma proposta assinada. Os
// valores derivados são opcionais: quando enviados, precisam bater com o
// cálculo do servidor.
type ProposalInput struct {
	SimulationInput

	FinancedAmount *float64 `json:"financedAmount,omitempty"`
	MonthlyPayment *float64 `json:"monthlyPayment,omitempty"`
	TotalAmount    *float64 `json:"totalAmount,omitempty"`
	InterestRate   *float64 `json:"interestRate,omitempty"`
	Status         string   `json:"status,omitempty" validate:"omitempty,oneof=signed"`

	Signature        string              `json:"signature,omitempty"`
	SignatureStrokes [][]signature.Point `json:"signatureStrokes,omitempty"`
}
