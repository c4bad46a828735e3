// /internal/finance/finance.go
package finance

import (
	"errors"
	"math"
)

const (
	AnnualInterestRate  = 0.12 // 12% ao ano, fixo para todas as propostas
	MinTermMonths       = 12
	MaxTermMonths       = 420 // 35 anos
	MinDownPaymentRatio = 0.2 // entrada mínima de 20% do valor do imóvel
	MaxPropertyValue    = 10_000_000_000.0
)

var (
	ErrInvalidTerm   = errors.New("prazo inválido")
	ErrInvalidAmount = errors.New("valor financiado inválido")
)

// Result é o resultado do cálculo de uma parcela fixa (tabela Price).
type Result struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalAmount    float64 `json:"totalAmount"`
	TotalInterest  float64 `json:"totalInterest"`
}

// Terms reúne os dados financeiros de uma simulação completa.
type Terms struct {
	PropertyValue  float64 `json:"propertyValue"`
	DownPayment    float64 `json:"downPayment"`
	FinancedAmount float64 `json:"financedAmount"`
	FinancingTerm  int     `json:"financingTerm"`
	InterestRate   float64 `json:"interestRate"`
	Result
}

// Calculate calcula a parcela mensal e o total a pagar para um empréstimo de
// taxa e prazo fixos. Nenhum arredondamento é feito aqui.
func Calculate(financedAmount, annualRate float64, termMonths int) (Result, error) {
	if termMonths <= 0 {
		return Result{}, ErrInvalidTerm
	}
	if financedAmount < 0 || math.IsNaN(financedAmount) || math.IsInf(financedAmount, 0) {
		return Result{}, ErrInvalidAmount
	}

	n := float64(termMonths)
	r := annualRate / 12

	var monthly float64
	if r == 0 {
		monthly = financedAmount / n
	} else {
		growth := math.Pow(1+r, n)
		monthly = financedAmount * r * growth / (growth - 1)
	}

	total := monthly * n
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return Result{}, ErrInvalidAmount
	}
	return Result{
		MonthlyPayment: monthly,
		TotalAmount:    total,
		TotalInterest:  total - financedAmount,
	}, nil
}

// MinDownPayment devolve a entrada mínima exigida para o valor do imóvel.
func MinDownPayment(propertyValue float64) float64 {
	return propertyValue * MinDownPaymentRatio
}

// Simulate calcula os termos de financiamento com a taxa fixa do sistema.
// A regra da entrada mínima é validada por quem chama.
func Simulate(propertyValue, downPayment float64, termMonths int) (Terms, error) {
	financed := propertyValue - downPayment
	res, err := Calculate(financed, AnnualInterestRate, termMonths)
	if err != nil {
		return Terms{}, err
	}

	return Terms{
		PropertyValue:  propertyValue,
		DownPayment:    downPayment,
		FinancedAmount: financed,
		FinancingTerm:  termMonths,
		InterestRate:   AnnualInterestRate,
		Result:         res,
	}, nil
}

// Installment é uma linha da tabela de amortização.
type Installment struct {
	Month        int     `json:"month"`
	Payment      float64 `json:"payment"`
	Interest     float64 `json:"interest"`
	Amortization float64 `json:"amortization"`
	Balance      float64 `json:"balance"`
}

// Schedule gera a tabela Price mês a mês para os termos informados.
func Schedule(t Terms) []Installment {
	if t.FinancingTerm <= 0 {
		return nil
	}

	r := t.InterestRate / 12
	balance := t.FinancedAmount
	rows := make([]Installment, 0, t.FinancingTerm)

	for m := 1; m <= t.FinancingTerm; m++ {
		interest := balance * r
		amort := t.MonthlyPayment - interest
		balance -= amort
		if m == t.FinancingTerm || math.Abs(balance) < 1e-6 {
			balance = 0
		}
		rows = append(rows, Installment{
			Month:        m,
			Payment:      t.MonthlyPayment,
			Interest:     interest,
			Amortization: amort,
			Balance:      balance,
		})
	}
	return rows
}
