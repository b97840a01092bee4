package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarzen/tradebook/internal/cli/output"
	"github.com/quarzen/tradebook/internal/cli/prompt"
	"github.com/quarzen/tradebook/pkg/journal/models"
)

var (
	symbolAddType string
	symbolOutput  string
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "Manage the symbol catalog",
	Long: `Manage the shared symbol catalog.

Symbols are normally created on the fly when a trade references a new ticker,
defaulting to the stock asset class. Registering a ticker up front pins its
asset class so crypto, forex and derivatives are classified correctly.

Examples:
  tradebook symbols add BTC-USD --type crypto
  tradebook symbols add EURUSD
  tradebook symbols list`,
}

var symbolsAddCmd = &cobra.Command{
	Use:   "add <ticker>",
	Short: "Register a ticker with its asset class",
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbolsAdd,
}

var symbolsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all known symbols",
	Args:    cobra.NoArgs,
	RunE:    runSymbolsList,
}

func init() {
	symbolsAddCmd.Flags().StringVar(&symbolAddType, "type", "", "Asset class (stock|crypto|forex|commodity|option|future|other); prompts when omitted")
	symbolsListCmd.Flags().StringVarP(&symbolOutput, "output", "o", "table", "Output format (table|json|yaml)")

	symbolsCmd.AddCommand(symbolsAddCmd)
	symbolsCmd.AddCommand(symbolsListCmd)
}

// assetTypeOptions lists the selectable asset classes for the interactive prompt.
func assetTypeOptions() []prompt.SelectOption {
	return []prompt.SelectOption{
		{Label: "Stock", Value: string(models.AssetStock), Description: "Equities and ETFs"},
		{Label: "Crypto", Value: string(models.AssetCrypto), Description: "Cryptocurrency pairs"},
		{Label: "Forex", Value: string(models.AssetForex), Description: "Currency pairs"},
		{Label: "Commodity", Value: string(models.AssetCommodity), Description: "Metals, energy and agriculturals"},
		{Label: "Option", Value: string(models.AssetOption), Description: "Options contracts"},
		{Label: "Future", Value: string(models.AssetFuture), Description: "Futures contracts"},
		{Label: "Other", Value: string(models.AssetOther), Description: "Anything else"},
	}
}

func runSymbolsAdd(cmd *cobra.Command, args []string) error {
	ticker := args[0]

	assetType := symbolAddType
	if assetType == "" {
		selected, err := prompt.Select("Asset class", assetTypeOptions())
		if err != nil {
			if prompt.IsAborted(err) {
				return nil
			}
			return err
		}
		assetType = selected
	}
	if !models.AssetType(assetType).IsValid() {
		return fmt.Errorf("invalid asset class %q", assetType)
	}

	journalStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = journalStore.Close() }()

	symbol, err := journalStore.GetOrCreateSymbol(context.Background(), ticker, models.AssetType(assetType))
	if err != nil {
		return fmt.Errorf("failed to register symbol: %w", err)
	}

	if symbol.AssetType != models.AssetType(assetType) {
		fmt.Printf("Symbol %s already registered as %s\n", symbol.Ticker, symbol.AssetType)
		return nil
	}

	fmt.Printf("✓ Symbol %s registered as %s\n", symbol.Ticker, symbol.AssetType)
	return nil
}

func runSymbolsList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(symbolOutput)
	if err != nil {
		return err
	}

	journalStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = journalStore.Close() }()

	symbols, err := journalStore.ListSymbols(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list symbols: %w", err)
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, symbols)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, symbols)
	}

	if len(symbols) == 0 {
		fmt.Println("No symbols found")
		return nil
	}

	table := output.NewTableData("TICKER", "NAME", "TYPE")
	for _, s := range symbols {
		name := s.Name
		if name == "" {
			name = "-"
		}
		table.AddRow(s.Ticker, name, string(s.AssetType))
	}
	return output.PrintTable(os.Stdout, table)
}
