package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_ReferenceValue(t *testing.T) {
	res, err := Calculate(100000, 0.12, 360)
	require.NoError(t, err)

	assert.InDelta(t, 1028.61, res.MonthlyPayment, 0.005)
	assert.Equal(t, res.MonthlyPayment*360, res.TotalAmount)
	assert.InDelta(t, res.TotalAmount-100000, res.TotalInterest, 1e-9)
}

func TestCalculate_ZeroRate(t *testing.T) {
	res, err := Calculate(1200, 0, 12)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.MonthlyPayment)
	assert.Equal(t, 1200.0, res.TotalAmount)
}

func TestCalculate_InvalidInput(t *testing.T) {
	_, err := Calculate(1000, 0.12, 0)
	assert.ErrorIs(t, err, ErrInvalidTerm)

	_, err = Calculate(-1, 0.12, 12)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Calculate(1e308, 0.12, 420)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSimulate_FinancedAmountIsExact(t *testing.T) {
	pairs := [][2]float64{
		{500000, 100000},
		{350000.55, 70000.11},
		{123456.78, 24691.36},
		{1000000, 1000000},
	}
	for _, p := range pairs {
		terms, err := Simulate(p[0], p[1], 240)
		require.NoError(t, err)
		assert.Equal(t, p[0]-p[1], terms.FinancedAmount)
		assert.Equal(t, AnnualInterestRate, terms.InterestRate)
		assert.Equal(t, terms.MonthlyPayment*240, terms.TotalAmount)
	}
}

func TestMinDownPayment(t *testing.T) {
	assert.InDelta(t, 100000, MinDownPayment(500000), 1e-9)
}

func TestSchedule(t *testing.T) {
	terms, err := Simulate(150000, 50000, 12)
	require.NoError(t, err)

	rows := Schedule(terms)
	require.Len(t, rows, 12)

	var amortized float64
	for _, r := range rows {
		amortized += r.Amortization
	}
	assert.InDelta(t, terms.FinancedAmount, amortized, 1e-6)
	assert.Zero(t, rows[len(rows)-1].Balance)
	assert.InDelta(t, 1000, rows[0].Interest, 1e-9)
}
