// Package analytics computes journal reports: discipline compliance,
// emotion-correlated win rates and mistake frequency.
//
// All functions are pure computations over trades loaded from the store;
// trades must have their Mistakes association populated.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/quarzen/tradebook/pkg/journal/models"
)

// ComplianceReport compares trades where the exit plan was executed
// (closed) against positions still hanging open.
type ComplianceReport struct {
	ClosedCount    int             `json:"closed_count"`
	OpenCount      int             `json:"open_count"`
	RealizedPnL    decimal.Decimal `json:"realized_pnl"`
	AvgClosedPnL   decimal.Decimal `json:"avg_closed_pnl"`
	ComplianceRate float64         `json:"compliance_rate"`
}

// WinRate summarizes closed-trade outcomes for a trade subset.
type WinRate struct {
	Total  int     `json:"total"`
	Closed int     `json:"closed"`
	Wins   int     `json:"wins"`
	Rate   float64 `json:"rate"`
}

// EmotionReport splits win rates by whether a trade carries an
// emotional mistake tag (FOMO, revenge trading and the like).
type EmotionReport struct {
	Emotional    WinRate `json:"emotional"`
	NonEmotional WinRate `json:"non_emotional"`

	// RateDiff is emotional minus non-emotional win rate, in
	// percentage points. Only meaningful when both sides have
	// closed trades.
	RateDiff float64 `json:"rate_diff"`
}

// MistakeStat aggregates the trades tagged with one mistake.
type MistakeStat struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Frequency int             `json:"frequency"`
	TotalPnL  decimal.Decimal `json:"total_pnl"`
	AvgPnL    decimal.Decimal `json:"avg_pnl"`
}

// CategoryStat rolls mistake occurrences up to their category.
type CategoryStat struct {
	Category    string          `json:"category"`
	Occurrences int             `json:"occurrences"`
	TotalPnL    decimal.Decimal `json:"total_pnl"`
	AvgPnL      decimal.Decimal `json:"avg_pnl"`
}

// Report is the full analytics output for one user's trades.
type Report struct {
	TotalTrades int             `json:"total_trades"`
	Compliance  ComplianceReport `json:"compliance"`
	Emotion     EmotionReport    `json:"emotion"`
	Mistakes    []MistakeStat    `json:"mistakes"`
	Categories  []CategoryStat   `json:"categories"`
}

// BuildReport computes the full report for a set of trades.
func BuildReport(trades []*models.Trade) *Report {
	return &Report{
		TotalTrades: len(trades),
		Compliance:  buildCompliance(trades),
		Emotion:     buildEmotion(trades),
		Mistakes:    buildMistakeStats(trades),
		Categories:  buildCategoryStats(trades),
	}
}

func buildCompliance(trades []*models.Trade) ComplianceReport {
	var report ComplianceReport
	for _, trade := range trades {
		if !trade.IsClosed() {
			report.OpenCount++
			continue
		}
		report.ClosedCount++
		if pnl := trade.PnL(); pnl != nil {
			report.RealizedPnL = report.RealizedPnL.Add(*pnl)
		}
	}

	if report.ClosedCount > 0 {
		report.AvgClosedPnL = report.RealizedPnL.
			Div(decimal.NewFromInt(int64(report.ClosedCount))).
			Round(8)
	}
	if total := report.ClosedCount + report.OpenCount; total > 0 {
		report.ComplianceRate = float64(report.ClosedCount) / float64(total) * 100
	}
	return report
}

func hasEmotionalMistake(trade *models.Trade) bool {
	for _, m := range trade.Mistakes {
		for _, name := range models.EmotionalMistakes {
			if m.Name == name {
				return true
			}
		}
	}
	return false
}

func buildWinRate(trades []*models.Trade) WinRate {
	wr := WinRate{Total: len(trades)}
	for _, trade := range trades {
		if !trade.IsClosed() {
			continue
		}
		wr.Closed++
		if trade.IsWin() {
			wr.Wins++
		}
	}
	if wr.Closed > 0 {
		wr.Rate = float64(wr.Wins) / float64(wr.Closed) * 100
	}
	return wr
}

func buildEmotion(trades []*models.Trade) EmotionReport {
	var emotional, calm []*models.Trade
	for _, trade := range trades {
		if hasEmotionalMistake(trade) {
			emotional = append(emotional, trade)
		} else {
			calm = append(calm, trade)
		}
	}

	report := EmotionReport{
		Emotional:    buildWinRate(emotional),
		NonEmotional: buildWinRate(calm),
	}
	if report.Emotional.Closed > 0 && report.NonEmotional.Closed > 0 {
		report.RateDiff = report.Emotional.Rate - report.NonEmotional.Rate
	}
	return report
}

func buildMistakeStats(trades []*models.Trade) []MistakeStat {
	type bucket struct {
		category  models.MistakeCategory
		frequency int
		closed    int
		totalPnL  decimal.Decimal
	}
	buckets := map[string]*bucket{}

	for _, trade := range trades {
		var pnl *decimal.Decimal
		if trade.IsClosed() {
			pnl = trade.PnL()
		}
		for _, m := range trade.Mistakes {
			b, ok := buckets[m.Name]
			if !ok {
				b = &bucket{category: m.Category}
				buckets[m.Name] = b
			}
			b.frequency++
			if pnl != nil {
				b.closed++
				b.totalPnL = b.totalPnL.Add(*pnl)
			}
		}
	}

	stats := make([]MistakeStat, 0, len(buckets))
	for name, b := range buckets {
		stat := MistakeStat{
			Name:      name,
			Category:  b.category.DisplayName(),
			Frequency: b.frequency,
			TotalPnL:  b.totalPnL,
		}
		if b.closed > 0 {
			stat.AvgPnL = b.totalPnL.Div(decimal.NewFromInt(int64(b.closed))).Round(8)
		}
		stats = append(stats, stat)
	}

	// Most frequent first; ties break alphabetically so output is stable.
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Frequency != stats[j].Frequency {
			return stats[i].Frequency > stats[j].Frequency
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

func buildCategoryStats(trades []*models.Trade) []CategoryStat {
	byCategory := map[string]*CategoryStat{}
	for _, stat := range buildMistakeStats(trades) {
		cs, ok := byCategory[stat.Category]
		if !ok {
			cs = &CategoryStat{Category: stat.Category}
			byCategory[stat.Category] = cs
		}
		cs.Occurrences += stat.Frequency
		cs.TotalPnL = cs.TotalPnL.Add(stat.TotalPnL)
	}

	stats := make([]CategoryStat, 0, len(byCategory))
	for _, cs := range byCategory {
		if cs.Occurrences > 0 {
			cs.AvgPnL = cs.TotalPnL.Div(decimal.NewFromInt(int64(cs.Occurrences))).Round(8)
		}
		stats = append(stats, *cs)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Occurrences != stats[j].Occurrences {
			return stats[i].Occurrences > stats[j].Occurrences
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}
