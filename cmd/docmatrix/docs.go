package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fincheck/docmatrix/pkg/authoring"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Maintain the document catalog",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newAuthoringManager()
		if err != nil {
			return err
		}

		entries, err := mgr.ListDocuments()
		if err != nil {
			return err
		}

		for _, entry := range entries {
			fmt.Printf("%-6s %s\n", entry.Code, entry.Type.Name)
			if entry.Type.Description != "" {
				fmt.Printf("       %s\n", entry.Type.Description)
			}
			if entry.Type.Validity != "" {
				fmt.Printf("       validade: %s\n", entry.Type.Validity)
			}
			if len(entry.Type.RelatedFields) > 0 {
				fmt.Printf("       campos: %s\n", strings.Join(entry.Type.RelatedFields, ", "))
			}
			if entry.Type.Norma != "" {
				fmt.Printf("       norma: %s\n", entry.Type.Norma)
			}
		}
		return nil
	},
}

var docsAddFlags struct {
	code        string
	name        string
	description string
	validity    string
	fields      []string
	norma       string
}

var docsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a document type",
	Long: `Register a document type with empty rules. Related fields must exist
in campos_disponiveis.

Example:
  docmatrix docs add --code GAR --name "Garantia" \
    --desc "Comprovação de garantia" --validity "90 dias" \
    --field fonte --field renda`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newAuthoringManager()
		if err != nil {
			return err
		}

		err = mgr.AddDocument(
			docsAddFlags.code,
			docsAddFlags.name,
			docsAddFlags.description,
			docsAddFlags.validity,
			docsAddFlags.fields,
			docsAddFlags.norma,
		)
		if err != nil {
			return err
		}

		fmt.Printf("Documento %q adicionado.\n", docsAddFlags.code)
		return nil
	},
}

var docsRemoveCmd = &cobra.Command{
	Use:   "remove <code>",
	Short: "Remove a document, its rules and its metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newAuthoringManager()
		if err != nil {
			return err
		}

		if err := mgr.RemoveDocument(args[0]); err != nil {
			return err
		}

		fmt.Printf("Documento %q removido.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsAddCmd)
	docsCmd.AddCommand(docsRemoveCmd)

	docsAddCmd.Flags().StringVar(&docsAddFlags.code, "code", "", "document code (e.g. CND)")
	docsAddCmd.Flags().StringVar(&docsAddFlags.name, "name", "", "display name")
	docsAddCmd.Flags().StringVar(&docsAddFlags.description, "desc", "", "description")
	docsAddCmd.Flags().StringVar(&docsAddFlags.validity, "validity", "", "validity period text")
	docsAddCmd.Flags().StringArrayVar(&docsAddFlags.fields, "field", nil, "related field (repeatable)")
	docsAddCmd.Flags().StringVar(&docsAddFlags.norma, "norma", "", "regulation code")
	docsAddCmd.MarkFlagRequired("code")
	docsAddCmd.MarkFlagRequired("name")
}

// newAuthoringManager wires an authoring manager against the configured
// backing files.
func newAuthoringManager() (*authoring.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Telemetry.Logging)
	store := authoring.NewFileStore(cfg.Catalog.RulesPath, cfg.Catalog.TypesPath)
	return authoring.NewManager(store, logger), nil
}
