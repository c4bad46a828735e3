// /internal/model/proposal.go
package model

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProposalStatus define os estados do ciclo de vida de uma proposta.
type ProposalStatus string

const (
	StatusSimulated ProposalStatus = "simulated" // rascunho do cliente, nunca persistido
	StatusSigned    ProposalStatus = "signed"
)

// consistencyTolerance é a diferença máxima aceita entre valores derivados.
const consistencyTolerance = 0.01

var (
	ErrSignatureMismatch = errors.New("assinatura deve existir se e somente se a proposta estiver assinada")
	ErrInconsistent      = errors.New("valores financeiros inconsistentes")
)

// Proposal representa uma simulação de financiamento assinada pelo cliente.
// Depois de criada, a proposta não é alterada nem removida.
type Proposal struct {
	ID             string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name           string         `gorm:"not null;size:255" json:"name"`
	Email          string         `gorm:"not null;size:255;index" json:"email"`
	Phone          string         `gorm:"not null;size:20" json:"phone"`
	PropertyValue  float64        `gorm:"not null" json:"propertyValue"`
	DownPayment    float64        `gorm:"not null" json:"downPayment"`
	FinancedAmount float64        `gorm:"not null" json:"financedAmount"`
	MonthlyPayment float64        `gorm:"not null" json:"monthlyPayment"`
	TotalAmount    float64        `gorm:"not null" json:"totalAmount"`
	FinancingTerm  int            `gorm:"not null" json:"financingTerm"`
	InterestRate   float64        `gorm:"not null" json:"interestRate"`
	Signature      *string        `gorm:"type:text" json:"signature,omitempty"` // data URI PNG
	Status         ProposalStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt      time.Time      `gorm:"index" json:"createdAt"`
}

// TableName define o nome da tabela para o modelo Proposal.
func (Proposal) TableName() string {
	return "proposals"
}

// BeforeCreate gera o identificador da proposta.
func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// TotalInterest é o total de juros pagos ao longo do financiamento.
func (p Proposal) TotalInterest() float64 {
	return p.TotalAmount - p.FinancedAmount
}

// HasSignature indica se a proposta carrega uma imagem de assinatura.
func (p Proposal) HasSignature() bool {
	return p.Signature != nil && *p.Signature != ""
}

// Validate confere os invariantes de registro: assinatura presente somente
// em propostas assinadas e valores financeiros coerentes entre si.
func (p Proposal) Validate() error {
	if p.HasSignature() != (p.Status == StatusSigned) {
		return ErrSignatureMismatch
	}
	if p.FinancedAmount < 0 || !near(p.FinancedAmount, p.PropertyValue-p.DownPayment) {
		return ErrInconsistent
	}
	if p.FinancingTerm <= 0 || !near(p.TotalAmount, p.MonthlyPayment*float64(p.FinancingTerm)) {
		return ErrInconsistent
	}
	return nil
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= consistencyTolerance
}
