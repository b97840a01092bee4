package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/quarzen/tradebook/internal/cli/output"
	"github.com/spf13/cobra"
)

var mistakesOutput string

var mistakesCmd = &cobra.Command{
	Use:   "mistakes",
	Short: "Manage the mistake catalog",
	Long: `Manage the predefined catalog of trading mistakes.

The catalog is what traders tag their trades with; analytics aggregate
over these tags. Seeding is idempotent: existing entries are kept and
only missing ones are inserted.

Examples:
  tradebook mistakes seed
  tradebook mistakes list
  tradebook mistakes list --output json`,
}

var mistakesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the predefined mistake catalog",
	Args:  cobra.NoArgs,
	RunE:  runMistakesSeed,
}

var mistakesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the mistake catalog",
	Args:    cobra.NoArgs,
	RunE:    runMistakesList,
}

func init() {
	mistakesListCmd.Flags().StringVarP(&mistakesOutput, "output", "o", "table", "Output format (table|json|yaml)")

	mistakesCmd.AddCommand(mistakesSeedCmd)
	mistakesCmd.AddCommand(mistakesListCmd)
}

func runMistakesSeed(cmd *cobra.Command, args []string) error {
	journalStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = journalStore.Close() }()

	seeded, err := journalStore.SeedMistakes(context.Background())
	if err != nil {
		return fmt.Errorf("failed to seed mistake catalog: %w", err)
	}

	if seeded == 0 {
		fmt.Println("Mistake catalog already up to date")
	} else {
		fmt.Printf("✓ Seeded %d mistakes\n", seeded)
	}
	return nil
}

func runMistakesList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(mistakesOutput)
	if err != nil {
		return err
	}

	journalStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = journalStore.Close() }()

	mistakes, err := journalStore.ListMistakes(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list mistakes: %w", err)
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, mistakes)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, mistakes)
	}

	if len(mistakes) == 0 {
		fmt.Println("Mistake catalog is empty; run 'tradebook mistakes seed' first")
		return nil
	}

	table := output.NewTableData("CATEGORY", "NAME", "DESCRIPTION")
	for _, m := range mistakes {
		table.AddRow(m.Category.DisplayName(), m.Name, m.Description)
	}
	return output.PrintTable(os.Stdout, table)
}
