package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericoliveiras/simulador-financiamento/internal/config"
	"github.com/ericoliveiras/simulador-financiamento/internal/currency"
	"github.com/ericoliveiras/simulador-financiamento/internal/database"
	"github.com/ericoliveiras/simulador-financiamento/internal/finance"
	"github.com/ericoliveiras/simulador-financiamento/internal/model"
	"github.com/ericoliveiras/simulador-financiamento/internal/pdf"
	"github.com/ericoliveiras/simulador-financiamento/internal/proposal"
	"github.com/ericoliveiras/simulador-financiamento/internal/signature"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "simulador",
		Short:        "Ferramentas do simulador de financiamento imobiliário",
		SilenceUsage: true,
	}
	root.AddCommand(
		newSimularCmd(),
		newAssinaturaCmd(),
		newPDFCmd(),
		newHashSenhaCmd(),
		newSeedCmd(),
	)
	return root
}

type simularFlags struct {
	propertyValue string
	downPayment   string
	term          int
	table         bool
}

func newSimularCmd() *cobra.Command {
	var flags simularFlags
	cmd := &cobra.Command{
		Use:   "simular",
		Short: "Calcula parcela e total de um financiamento",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimular(cmd.OutOrStdout(), flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.propertyValue, "valor-imovel", "", "Valor do imóvel (ex.: \"R$ 500.000,00\")")
	f.StringVar(&flags.downPayment, "entrada", "", "Valor da entrada")
	f.IntVar(&flags.term, "prazo", 360, "Prazo em meses (12 a 420)")
	f.BoolVar(&flags.table, "tabela", false, "Imprime a tabela de amortização mês a mês")
	_ = cmd.MarkFlagRequired("valor-imovel")
	_ = cmd.MarkFlagRequired("entrada")
	return cmd
}

func runSimular(w io.Writer, flags simularFlags) error {
	terms, err := proposal.SimulateTerms(proposal.TermsInput{
		PropertyValue: currency.Amount(currency.Parse(flags.propertyValue)),
		DownPayment:   currency.Amount(currency.Parse(flags.downPayment)),
		FinancingTerm: flags.term,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Valor do imóvel:   %s\n", currency.Format(terms.PropertyValue))
	fmt.Fprintf(w, "Entrada:           %s\n", currency.Format(terms.DownPayment))
	fmt.Fprintf(w, "Valor financiado:  %s\n", currency.Format(terms.FinancedAmount))
	fmt.Fprintf(w, "Prazo:             %d meses\n", terms.FinancingTerm)
	fmt.Fprintf(w, "Taxa de juros:     12%% ao ano\n")
	fmt.Fprintf(w, "Parcela mensal:    %s\n", currency.Format(terms.MonthlyPayment))
	fmt.Fprintf(w, "Total a pagar:     %s\n", currency.Format(terms.TotalAmount))
	fmt.Fprintf(w, "Total de juros:    %s\n", currency.Format(terms.TotalInterest))

	if flags.table {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%5s  %16s  %16s  %16s  %18s\n", "Mês", "Parcela", "Juros", "Amortização", "Saldo")
		for _, row := range finance.Schedule(terms) {
			fmt.Fprintf(w, "%5d  %16s  %16s  %16s  %18s\n", row.Month,
				currency.Format(row.Payment), currency.Format(row.Interest),
				currency.Format(row.Amortization), currency.Format(row.Balance))
		}
	}
	return nil
}

func newAssinaturaCmd() *cobra.Command {
	var strokesPath, out string
	cmd := &cobra.Command{
		Use:   "assinatura",
		Short: "Rasteriza traços (JSON) em uma imagem PNG de assinatura",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssinatura(strokesPath, out)
		},
	}
	cmd.Flags().StringVar(&strokesPath, "tracos", "", "Arquivo JSON com os traços ([[{\"x\":..,\"y\":..}]])")
	cmd.Flags().StringVar(&out, "out", "assinatura.png", "Arquivo PNG de saída")
	_ = cmd.MarkFlagRequired("tracos")
	return cmd
}

func runAssinatura(strokesPath, out string) error {
	data, err := os.ReadFile(strokesPath)
	if err != nil {
		return err
	}
	var strokes [][]signature.Point
	if err := json.Unmarshal(data, &strokes); err != nil {
		return fmt.Errorf("traços inválidos: %w", err)
	}

	pad := signature.NewPad(signature.Rect{})
	pad.Replay(strokes)
	png, err := pad.PNG()
	if err != nil {
		return err
	}
	return os.WriteFile(out, png, 0o644)
}

func newPDFCmd() *cobra.Command {
	var proposalPath, signaturePath, out string
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Gera o PDF da simulação a partir de uma proposta em JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			r := pdf.NewRenderer(cfg.AppName, cfg.Location())
			return runPDF(r, proposalPath, signaturePath, out)
		},
	}
	cmd.Flags().StringVar(&proposalPath, "proposta", "", "Arquivo JSON da proposta")
	cmd.Flags().StringVar(&signaturePath, "assinatura", "", "Imagem PNG da assinatura (opcional)")
	cmd.Flags().StringVar(&out, "out", pdf.Filename, "Arquivo PDF de saída")
	_ = cmd.MarkFlagRequired("proposta")
	return cmd
}

func runPDF(r *pdf.Renderer, proposalPath, signaturePath, out string) error {
	data, err := os.ReadFile(proposalPath)
	if err != nil {
		return err
	}
	var p model.Proposal
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("proposta inválida: %w", err)
	}

	var sig string
	if signaturePath != "" {
		img, err := os.ReadFile(signaturePath)
		if err != nil {
			return err
		}
		if sig, err = signature.EncodeDataURI(img); err != nil {
			return err
		}
	}

	doc, err := r.Render(p, sig)
	if err != nil {
		return err
	}
	return os.WriteFile(out, doc, 0o644)
}

func newHashSenhaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-senha <senha>",
		Short: "Gera o hash bcrypt para ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Grava propostas assinadas de demonstração no DATABASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			db, err := database.Connect(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			ids, err := database.SeedDemoProposals(context.Background(), database.NewProposalStore(db), n)
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return err
		},
	}
	cmd.Flags().IntVar(&n, "n", 5, "Quantidade de propostas")
	return cmd
}
