package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/quarzen/tradebook/internal/cli/output"
	"github.com/quarzen/tradebook/pkg/analytics"
	"github.com/quarzen/tradebook/pkg/journal/models"
	"github.com/quarzen/tradebook/pkg/journal/store"
	"github.com/spf13/cobra"
)

var (
	analyticsOutput string
	analyticsTicker string
	analyticsFrom   string
	analyticsTo     string
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics <username>",
	Short: "Show discipline analytics for a user",
	Long: `Compute and display the discipline report for a user's trades.

The report covers exit-plan compliance, win rates split by emotional
mistakes (FOMO, revenge trading and the like), and mistake frequency
with per-mistake P&L.

Examples:
  tradebook analytics alice
  tradebook analytics alice --ticker AAPL
  tradebook analytics alice --from 2026-01-01 --to 2026-06-30
  tradebook analytics alice --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalytics,
}

func init() {
	analyticsCmd.Flags().StringVarP(&analyticsOutput, "output", "o", "table", "Output format (table|json|yaml)")
	analyticsCmd.Flags().StringVar(&analyticsTicker, "ticker", "", "Restrict to one symbol")
	analyticsCmd.Flags().StringVar(&analyticsFrom, "from", "", "Only trades entered on or after this date (YYYY-MM-DD)")
	analyticsCmd.Flags().StringVar(&analyticsTo, "to", "", "Only trades entered on or before this date (YYYY-MM-DD)")
}

func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", value)
	}
	return &t, nil
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	username := args[0]

	format, err := output.ParseFormat(analyticsOutput)
	if err != nil {
		return err
	}

	from, err := parseDateFlag(analyticsFrom)
	if err != nil {
		return err
	}
	to, err := parseDateFlag(analyticsTo)
	if err != nil {
		return err
	}

	journalStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = journalStore.Close() }()

	ctx := context.Background()
	user, err := journalStore.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return fmt.Errorf("user %q not found", username)
		}
		return err
	}

	trades, err := journalStore.ListTrades(ctx, user.ID, &store.TradeFilter{
		From:   from,
		To:     to,
		Ticker: analyticsTicker,
	})
	if err != nil {
		return fmt.Errorf("failed to load trades: %w", err)
	}

	report := analytics.BuildReport(trades)

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, report)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, report)
	}

	printAnalyticsReport(username, report)
	return nil
}

func printAnalyticsReport(username string, report *analytics.Report) {
	fmt.Println()
	fmt.Printf("Discipline Report for %s\n", username)
	fmt.Println("========================================")
	fmt.Println()

	fmt.Printf("  Total trades:     %d\n", report.TotalTrades)
	fmt.Printf("  Closed / open:    %d / %d\n", report.Compliance.ClosedCount, report.Compliance.OpenCount)
	fmt.Printf("  Compliance rate:  %.1f%%\n", report.Compliance.ComplianceRate)
	fmt.Printf("  Realized P&L:     %s\n", report.Compliance.RealizedPnL.StringFixed(2))
	if report.Compliance.ClosedCount > 0 {
		fmt.Printf("  Avg closed P&L:   %s\n", report.Compliance.AvgClosedPnL.StringFixed(2))
	}
	fmt.Println()

	fmt.Println("Emotional vs. calm trading")
	fmt.Printf("  Emotional:     %d trades, %d closed, win rate %.1f%%\n",
		report.Emotion.Emotional.Total, report.Emotion.Emotional.Closed, report.Emotion.Emotional.Rate)
	fmt.Printf("  Non-emotional: %d trades, %d closed, win rate %.1f%%\n",
		report.Emotion.NonEmotional.Total, report.Emotion.NonEmotional.Closed, report.Emotion.NonEmotional.Rate)
	if report.Emotion.Emotional.Closed > 0 && report.Emotion.NonEmotional.Closed > 0 {
		fmt.Printf("  Difference:    %+.1f percentage points\n", report.Emotion.RateDiff)
	}
	fmt.Println()

	if len(report.Mistakes) == 0 {
		fmt.Println("No mistakes tagged yet")
		fmt.Println()
		return
	}

	fmt.Println("Most frequent mistakes")
	table := output.NewTableData("MISTAKE", "CATEGORY", "COUNT", "TOTAL P&L", "AVG P&L")
	for _, m := range report.Mistakes {
		table.AddRow(m.Name, m.Category,
			fmt.Sprintf("%d", m.Frequency),
			m.TotalPnL.StringFixed(2),
			m.AvgPnL.StringFixed(2))
	}
	if err := output.PrintTable(os.Stdout, table); err != nil {
		PrintErr("failed to render table: %v", err)
	}
	fmt.Println()

	fmt.Println("By category")
	catTable := output.NewTableData("CATEGORY", "OCCURRENCES", "TOTAL P&L", "AVG P&L")
	for _, c := range report.Categories {
		catTable.AddRow(c.Category,
			fmt.Sprintf("%d", c.Occurrences),
			c.TotalPnL.StringFixed(2),
			c.AvgPnL.StringFixed(2))
	}
	if err := output.PrintTable(os.Stdout, catTable); err != nil {
		PrintErr("failed to render table: %v", err)
	}
	fmt.Println()
}
