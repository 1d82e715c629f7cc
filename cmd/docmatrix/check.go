package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fincheck/docmatrix/pkg/engine"
	"fincheck/docmatrix/pkg/manager"
	"fincheck/docmatrix/pkg/money"
)

var checkFlags struct {
	attrs  []string
	renda  string
	waived bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate applicant attributes against the rule matrix",
	Long: `Run a one-shot evaluation and print the documents the applicant must
submit.

Attributes are given as --attr campo=valor pairs; income goes through
--renda and accepts Brazilian currency notation.

Examples:
  docmatrix check --attr fonte=fgts --attr porte=pequeno --renda "R$ 3.000,00"
  docmatrix check --attr cadin=nao --attr programa=fne --waived`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringArrayVarP(&checkFlags.attrs, "attr", "a", nil, "attribute as campo=valor (repeatable)")
	checkCmd.Flags().StringVar(&checkFlags.renda, "renda", "", "monthly income (e.g. \"R$ 3.000,00\")")
	checkCmd.Flags().BoolVar(&checkFlags.waived, "waived", false, "also print waived documents and the matching rules")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Telemetry.Logging)

	catalogs := manager.New(cfg.Catalog, logger, nil)
	if err := catalogs.Load(); err != nil {
		return err
	}
	cat := catalogs.Current()

	attrs := make(engine.Attributes)
	for _, pair := range checkFlags.attrs {
		field, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --attr %q, expected campo=valor", pair)
		}
		attrs.SetString(strings.TrimSpace(field), value)
	}
	if checkFlags.renda != "" {
		attrs.SetNumber("renda", money.ParseBRL(checkFlags.renda))
	}

	res := engine.NewResolver(logger).Evaluate(cat, attrs)

	if len(res.Required) == 0 {
		fmt.Println("Nenhum documento necessário para os critérios informados.")
	} else {
		fmt.Printf("Documentos exigidos (%d):\n", len(res.Required))
		for _, doc := range res.Required {
			fmt.Printf("  %-6s %s\n", doc.Code, doc.Name)
			if doc.Type != nil && doc.Type.Validity != "" {
				fmt.Printf("         validade: %s\n", doc.Type.Validity)
			}
		}
	}

	if checkFlags.waived && len(res.Waived) > 0 {
		fmt.Printf("\nDocumentos dispensados (%d):\n", len(res.Waived))
		for _, doc := range res.Waived {
			fmt.Printf("  %-6s %s — %s\n", doc.Code, doc.Name, doc.RuleDescription)
		}
	}

	return nil
}
