package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"fincheck/docmatrix/pkg/catalog"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Maintain the waiver rules of a document",
}

var rulesListCmd = &cobra.Command{
	Use:   "list <code>",
	Short: "List the rules of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newAuthoringManager()
		if err != nil {
			return err
		}

		rules, err := mgr.ListRules(args[0])
		if err != nil {
			return err
		}

		if len(rules) == 0 {
			fmt.Printf("Documento %q não possui regras (sempre exigido).\n", args[0])
			return nil
		}

		for i, rule := range rules {
			fmt.Printf("[%d] %s\n", i, rule.Description)
			for field, req := range rule.Conditions {
				cond, err := json.Marshal(req)
				if err != nil {
					return err
				}
				fmt.Printf("    %s: %s\n", field, cond)
			}
		}
		return nil
	},
}

var rulesAddFlags struct {
	description string
	conditions  string
}

var rulesAddCmd = &cobra.Command{
	Use:   "add <code>",
	Short: "Append a waiver rule to a document",
	Long: `Append a waiver rule. Conditions are given as a JSON object mapping
fields to either a value list or a minimo/maximo range.

Example:
  docmatrix rules add GAR --desc "Dispensa para FGTS até R$ 5.000" \
    --cond '{"fonte": ["fgts"], "renda": {"maximo": 5000}}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var conditions map[string]catalog.Requirement
		if err := json.Unmarshal([]byte(rulesAddFlags.conditions), &conditions); err != nil {
			return fmt.Errorf("invalid --cond JSON: %w", err)
		}

		mgr, err := newAuthoringManager()
		if err != nil {
			return err
		}

		rule := catalog.Rule{Description: rulesAddFlags.description, Conditions: conditions}
		if err := mgr.AddRule(args[0], rule); err != nil {
			return err
		}

		fmt.Printf("Regra adicionada ao documento %q.\n", args[0])
		return nil
	},
}

var rulesRemoveFlags struct {
	index int
}

var rulesRemoveCmd = &cobra.Command{
	Use:   "remove <code>",
	Short: "Remove a rule by index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newAuthoringManager()
		if err != nil {
			return err
		}

		if err := mgr.RemoveRule(args[0], rulesRemoveFlags.index); err != nil {
			return err
		}

		fmt.Printf("Regra %d removida do documento %q.\n", rulesRemoveFlags.index, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesRemoveCmd)

	rulesAddCmd.Flags().StringVar(&rulesAddFlags.description, "desc", "", "rule description")
	rulesAddCmd.Flags().StringVar(&rulesAddFlags.conditions, "cond", "", "conditions as JSON")
	rulesAddCmd.MarkFlagRequired("desc")
	rulesAddCmd.MarkFlagRequired("cond")

	rulesRemoveCmd.Flags().IntVar(&rulesRemoveFlags.index, "index", 0, "rule index (as shown by rules list)")
	rulesRemoveCmd.MarkFlagRequired("index")
}
