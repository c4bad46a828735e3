// /internal/proposal/draft.go
package proposal

import (
	"errors"
	"strings"

	"github.com/ericoliveiras/simulador-financiamento/internal/finance"
	"github.com/ericoliveiras/simulador-financiamento/internal/model"
	"github.com/ericoliveiras/simulador-financiamento/internal/signature"
)

// ErrMissingSignature é retornado ao assinar um rascunho sem assinatura.
var ErrMissingSignature = errors.New("assinatura obrigatória")

// Client reúne os dados pessoais informados na simulação.
type Client struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Draft é a simulação em posse do cliente antes da assinatura. Ele é passado
// explicitamente do passo de cálculo para o passo de assinatura e nunca é
// persistido.
type Draft struct {
	Client
	finance.Terms
	Status model.ProposalStatus `json:"status"`
}

// Simulate valida o formulário e calcula os termos do financiamento.
func Simulate(in SimulationInput) (*Draft, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return newDraft(in)
}

// SimulateTerms valida os campos financeiros e calcula os termos, para quem
// não tem os dados do cliente (ex.: a CLI).
func SimulateTerms(in TermsInput) (finance.Terms, error) {
	if err := in.Validate(); err != nil {
		return finance.Terms{}, err
	}
	return finance.Simulate(in.PropertyValue.Float64(), in.DownPayment.Float64(), in.FinancingTerm)
}

func newDraft(in SimulationInput) (*Draft, error) {
	terms, err := finance.Simulate(in.PropertyValue.Float64(), in.DownPayment.Float64(), in.FinancingTerm)
	if err != nil {
		return nil, err
	}
	return &Draft{
		Client: Client{Name: in.Name, Email: in.Email, Phone: in.Phone},
		Terms:  terms,
		Status: model.StatusSimulated,
	}, nil
}

// Sign entrega a proposta assinada, pronta para ser gravada. O rascunho não é
// alterado.
func (d *Draft) Sign(signatureURI string) (*model.Proposal, error) {
	signatureURI = strings.TrimSpace(signatureURI)
	if signatureURI == "" {
		return nil, ErrMissingSignature
	}
	if _, err := signature.DecodeDataURI(signatureURI); err != nil {
		return nil, err
	}

	sig := signatureURI
	return &model.Proposal{
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		PropertyValue:  d.PropertyValue,
		DownPayment:    d.DownPayment,
		FinancedAmount: d.FinancedAmount,
		MonthlyPayment: d.MonthlyPayment,
		TotalAmount:    d.TotalAmount,
		FinancingTerm:  d.FinancingTerm,
		InterestRate:   d.InterestRate,
		Signature:      &sig,
		Status:         model.StatusSigned,
	}, nil
}

// Build valida o corpo completo de criação de proposta e devolve a proposta
// assinada. Todas as falhas de campo são reunidas em um único
// ValidationError.
func Build(in ProposalInput) (*model.Proposal, error) {
	in.normalize()
	ve := &ValidationError{}
	check(&in, ve)

	sigURI, sigErr := resolveSignature(in)
	if sigErr != "" {
		ve.add("signature", sigErr)
	}
	if len(ve.Fields) > 0 {
		return nil, ve
	}

	draft, err := newDraft(in.SimulationInput)
	if err != nil {
		return nil, err
	}

	if mismatch(in.FinancedAmount, draft.FinancedAmount) {
		ve.add("financedAmount", "Valor financiado não confere com o cálculo")
	}
	if mismatch(in.MonthlyPayment, draft.MonthlyPayment) {
		ve.add("monthlyPayment", "Parcela mensal não confere com o cálculo")
	}
	if mismatch(in.TotalAmount, draft.TotalAmount) {
		ve.add("totalAmount", "Total a pagar não confere com o cálculo")
	}
	if in.InterestRate != nil && *in.InterestRate != finance.AnnualInterestRate {
		ve.add("interestRate", "Taxa de juros deve ser 12% ao ano")
	}
	if err := ve.orNil(); err != nil {
		return nil, err
	}

	return draft.Sign(sigURI)
}

// resolveSignature escolhe entre o data URI enviado e os traços capturados,
// que são rasterizados aqui. Retorna a mensagem de erro do campo, se houver.
func resolveSignature(in ProposalInput) (string, string) {
	if in.Signature != "" {
		if _, err := signature.DecodeDataURI(in.Signature); err != nil {
			return "", "Assinatura inválida"
		}
		return in.Signature, ""
	}

	if len(in.SignatureStrokes) > 0 {
		pad := signature.NewPad(signature.Rect{})
		pad.Replay(in.SignatureStrokes)
		uri, err := pad.Save()
		if err != nil {
			return "", "Assinatura obrigatória"
		}
		return uri, ""
	}

	return "", "Assinatura obrigatória"
}
