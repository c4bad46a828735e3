package proposal

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericoliveiras/simulador-financiamento/internal/finance"
	"github.com/ericoliveiras/simulador-financiamento/internal/model"
	"github.com/ericoliveiras/simulador-financiamento/internal/signature"
)

func validSimulation() SimulationInput {
	return SimulationInput{
		Name:  "Maria Souza",
		Email: "maria@example.com",
		Phone: "(11) 98765-4321",
		TermsInput: TermsInput{
			PropertyValue: 500000,
			DownPayment:   100000,
			FinancingTerm: 360,
		},
	}
}

func testSignature(t *testing.T) string {
	t.Helper()
	pad := signature.NewPad(signature.Rect{})
	pad.Replay([][]signature.Point{{{X: 10, Y: 10}, {X: 120, Y: 90}, {X: 300, Y: 40}}})
	uri, err := pad.Save()
	require.NoError(t, err)
	return uri
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	out := map[string]string{}
	for _, f := range ve.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestSimulate_OK(t *testing.T) {
	d, err := Simulate(validSimulation())
	require.NoError(t, err)

	assert.Equal(t, model.StatusSimulated, d.Status)
	assert.Equal(t, 400000.0, d.FinancedAmount)
	assert.Equal(t, finance.AnnualInterestRate, d.InterestRate)
	assert.InDelta(t, 4114.45, d.MonthlyPayment, 0.01)
}

func TestSimulate_ValidationMessages(t *testing.T) {
	in := SimulationInput{
		Name:       " A ",
		Email:      "sem-arroba",
		Phone:      "1234-5678",
		TermsInput: TermsInput{FinancingTerm: 6},
	}
	_, err := Simulate(in)
	fields := fieldsOf(t, err)

	assert.Equal(t, "Nome deve ter pelo menos 2 caracteres", fields["name"])
	assert.Equal(t, "Email inválido", fields["email"])
	assert.Equal(t, "Telefone inválido", fields["phone"])
	assert.Equal(t, "Valor do imóvel é obrigatório", fields["propertyValue"])
	assert.Equal(t, "Valor da entrada é obrigatório", fields["downPayment"])
	assert.Equal(t, "Prazo mínimo de 12 meses", fields["financingTerm"])
}

func TestSimulate_DownPaymentRules(t *testing.T) {
	in := validSimulation()
	in.DownPayment = 99999.99
	_, err := Simulate(in)
	assert.Equal(t, "Entrada deve ser no mínimo 20% do valor do imóvel", fieldsOf(t, err)["downPayment"])

	in.DownPayment = 500000.01
	_, err = Simulate(in)
	assert.Equal(t, "Entrada não pode ser maior que o valor do imóvel", fieldsOf(t, err)["downPayment"])

	in.DownPayment = 500000
	d, err := Simulate(in)
	require.NoError(t, err)
	assert.Zero(t, d.FinancedAmount)
}

func TestSimulate_ValueUpperBound(t *testing.T) {
	in := validSimulation()
	in.PropertyValue = 1e308
	in.DownPayment = 5e307
	_, err := Simulate(in)
	fields := fieldsOf(t, err)
	assert.Equal(t, "Valor do imóvel acima do limite permitido", fields["propertyValue"])
	assert.Equal(t, "Valor da entrada acima do limite permitido", fields["downPayment"])

	in.PropertyValue = finance.MaxPropertyValue
	in.DownPayment = finance.MaxPropertyValue / 2
	d, err := Simulate(in)
	require.NoError(t, err)
	assert.False(t, math.IsInf(d.TotalAmount, 0))
}

func TestSimulateTerms_SharesFormRules(t *testing.T) {
	terms, err := SimulateTerms(validSimulation().TermsInput)
	require.NoError(t, err)
	assert.InDelta(t, 4114.45, terms.MonthlyPayment, 0.01)

	_, err = SimulateTerms(TermsInput{PropertyValue: 500000, DownPayment: 50000, FinancingTerm: 6})
	fields := fieldsOf(t, err)
	assert.Equal(t, "Entrada deve ser no mínimo 20% do valor do imóvel", fields["downPayment"])
	assert.Equal(t, "Prazo mínimo de 12 meses", fields["financingTerm"])
	assert.NotContains(t, fields, "name")
}

func TestSimulate_MaxTerm(t *testing.T) {
	in := validSimulation()
	in.FinancingTerm = 421
	_, err := Simulate(in)
	assert.Equal(t, "Prazo máximo de 420 meses", fieldsOf(t, err)["financingTerm"])
}

func TestDraftSign(t *testing.T) {
	d, err := Simulate(validSimulation())
	require.NoError(t, err)

	_, err = d.Sign("")
	assert.ErrorIs(t, err, ErrMissingSignature)

	sig := testSignature(t)
	p, err := d.Sign(sig)
	require.NoError(t, err)

	assert.Equal(t, model.StatusSigned, p.Status)
	require.NotNil(t, p.Signature)
	assert.Equal(t, sig, *p.Signature)
	assert.NoError(t, p.Validate())
	assert.Equal(t, model.StatusSimulated, d.Status, "draft must not change")
}

func TestBuild_FromJSONWithFormattedValues(t *testing.T) {
	body := `{
		"name": "João Silva",
		"email": "joao@example.com",
		"phone": "11987654321",
		"propertyValue": "R$ 450.000,00",
		"downPayment": "R$ 90.000,00",
		"financingTerm": 240,
		"status": "signed",
		"signatureStrokes": [[{"x": 10, "y": 10}, {"x": 200, "y": 150}]]
	}`
	var in ProposalInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	p, err := Build(in)
	require.NoError(t, err)
	assert.Equal(t, 360000.0, p.FinancedAmount)
	assert.True(t, p.HasSignature())
	assert.NoError(t, p.Validate())
}

func TestBuild_RequiresSignature(t *testing.T) {
	_, err := Build(ProposalInput{SimulationInput: validSimulation()})
	assert.Equal(t, "Assinatura obrigatória", fieldsOf(t, err)["signature"])

	_, err = Build(ProposalInput{SimulationInput: validSimulation(), Signature: "data:image/png;base64,AAAA"})
	assert.Equal(t, "Assinatura inválida", fieldsOf(t, err)["signature"])
}

func TestBuild_RejectsTamperedValues(t *testing.T) {
	sig := testSignature(t)
	monthly := 100.0
	rate := 0.05
	status := "simulated"

	in := ProposalInput{
		SimulationInput: validSimulation(),
		MonthlyPayment:  &monthly,
		InterestRate:    &rate,
		Signature:       sig,
	}
	_, err := Build(in)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "monthlyPayment")
	assert.Contains(t, fields, "interestRate")

	in = ProposalInput{SimulationInput: validSimulation(), Status: status, Signature: sig}
	_, err = Build(in)
	assert.Equal(t, "Status inválido", fieldsOf(t, err)["status"])
}

func TestBuild_AcceptsMatchingDerivedValues(t *testing.T) {
	d, err := Simulate(validSimulation())
	require.NoError(t, err)

	financed := d.FinancedAmount
	monthly := d.MonthlyPayment + 0.004
	total := d.TotalAmount
	rate := finance.AnnualInterestRate

	p, err := Build(ProposalInput{
		SimulationInput: validSimulation(),
		FinancedAmount:  &financed,
		MonthlyPayment:  &monthly,
		TotalAmount:     &total,
		InterestRate:    &rate,
		Signature:       testSignature(t),
	})
	require.NoError(t, err)
	assert.Equal(t, d.MonthlyPayment, p.MonthlyPayment)
}
