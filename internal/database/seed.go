// /internal/database/seed.go
package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericoliveiras/simulador-financiamento/internal/currency"
	"github.com/ericoliveiras/simulador-financiamento/internal/proposal"
	"github.com/ericoliveiras/simulador-financiamento/internal/signature"
)

var demoClients = []proposal.Client{
	{Name: "Maria Souza", Email: "maria.souza@example.com", Phone: "(11) 98765-4321"},
	{Name: "João Pereira", Email: "joao.pereira@example.com", Phone: "(21) 99876-1234"},
	{Name: "Ana Lima", Email: "ana.lima@example.com", Phone: "(31) 3456-7890"},
	{Name: "Carlos Mendes", Email: "carlos.mendes@example.com", Phone: "(41) 99123-4567"},
	{Name: "Beatriz Rocha", Email: "beatriz.rocha@example.com", Phone: "(51) 98877-6655"},
}

// SeedDemoProposals grava n propostas assinadas de demonstração, para uso em
// desenvolvimento.
func SeedDemoProposals(ctx context.Context, store *ProposalStore, n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("quantidade de propostas inválida: %d", n)
	}

	pad := signature.NewPad(signature.Rect{})
	pad.Replay([][]signature.Point{
		{{X: 40, Y: 140}, {X: 90, Y: 60}, {X: 140, Y: 150}, {X: 190, Y: 70}, {X: 240, Y: 140}},
		{{X: 280, Y: 120}, {X: 420, Y: 90}, {X: 560, Y: 110}},
	})
	sig, err := pad.Save()
	if err != nil {
		return nil, fmt.Errorf("falha ao gerar assinatura de demonstração: %w", err)
	}

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		c := demoClients[i%len(demoClients)]
		propertyValue := 300000.0 + float64(i)*50000
		in := proposal.SimulationInput{
			Name:  c.Name,
			Email: c.Email,
			Phone: c.Phone,
			TermsInput: proposal.TermsInput{
				PropertyValue: currency.Amount(propertyValue),
				DownPayment:   currency.Amount(propertyValue * 0.25),
				FinancingTerm: 120 + (i%6)*60,
			},
		}

		draft, err := proposal.Simulate(in)
		if err != nil {
			return ids, err
		}
		p, err := draft.Sign(sig)
		if err != nil {
			return ids, err
		}
		id, err := store.Create(ctx, p)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}

	slog.Info("propostas de demonstração criadas", "quantidade", len(ids))
	return ids, nil
}
