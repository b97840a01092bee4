package models

// MistakeCategory groups mistakes for behavioral analysis.
type MistakeCategory string

const (
	CategoryEntry      MistakeCategory = "entry"
	CategoryExit       MistakeCategory = "exit"
	CategoryPosition   MistakeCategory = "position"
	CategoryRisk       MistakeCategory = "risk"
	CategoryPsychology MistakeCategory = "psychology"
	CategoryAnalysis   MistakeCategory = "analysis"
	CategoryExecution  MistakeCategory = "execution"
	CategoryOther      MistakeCategory = "other"
)

// IsValid checks if the category is one of the known values.
func (c MistakeCategory) IsValid() bool {
	switch c {
	case CategoryEntry, CategoryExit, CategoryPosition, CategoryRisk,
		CategoryPsychology, CategoryAnalysis, CategoryExecution, CategoryOther:
		return true
	}
	return false
}

// DisplayName returns a human-readable category label.
func (c MistakeCategory) DisplayName() string {
	switch c {
	case CategoryEntry:
		return "Entry Timing"
	case CategoryExit:
		return "Exit Timing"
	case CategoryPosition:
		return "Position Sizing"
	case CategoryRisk:
		return "Risk Management"
	case CategoryPsychology:
		return "Psychology/Emotion"
	case CategoryAnalysis:
		return "Analysis/Research"
	case CategoryExecution:
		return "Trade Execution"
	default:
		return "Other"
	}
}

// Mistake is a predefined trading-mistake tag traders assign to trades
// so recurring behavior shows up in analytics.
type Mistake struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Description string          `json:"description,omitempty"`
	Category    MistakeCategory `gorm:"size:20;default:other" json:"category"`
}

// TableName returns the table name for Mistake.
func (Mistake) TableName() string {
	return "mistakes"
}

// EmotionalMistakes lists the psychology-driven mistakes used by the
// emotion vs. win-rate analysis.
var EmotionalMistakes = []string{
	"FOMO trading",
	"Revenge trading",
	"Overconfidence",
	"Hesitation",
	"Confirmation bias",
}

// MistakeCatalog is the predefined catalog seeded by `tradebook mistakes seed`.
var MistakeCatalog = []Mistake{
	// Entry timing
	{Name: "Entered too early", Description: "Entered position before confirmation signals", Category: CategoryEntry},
	{Name: "Entered too late", Description: "Missed optimal entry point, entered after move began", Category: CategoryEntry},
	{Name: "Chased the price", Description: "Bought/sold at worse price trying to catch momentum", Category: CategoryEntry},
	{Name: "Counter-trend entry", Description: "Entered against prevailing trend", Category: CategoryEntry},

	// Exit timing
	{Name: "Exited too early", Description: "Closed profitable trade before target was reached", Category: CategoryExit},
	{Name: "Exited too late", Description: "Held losing position hoping for recovery", Category: CategoryExit},
	{Name: "Pyramid selling", Description: "Sold winners too quickly, held losers too long", Category: CategoryExit},
	{Name: "No stop loss", Description: "Entered without predefined exit plan", Category: CategoryExit},

	// Position sizing
	{Name: "Position too large", Description: "Risked too much capital on single trade", Category: CategoryPosition},
	{Name: "Position too small", Description: "Risked too little, missed opportunity", Category: CategoryPosition},
	{Name: "Added to loser", Description: "Increased position size after loss (revenge trading)", Category: CategoryPosition},
	{Name: "Over-leveraged", Description: "Used excessive leverage relative to account size", Category: CategoryPosition},

	// Risk management
	{Name: "No risk-reward ratio", Description: "Did not consider potential profit vs loss", Category: CategoryRisk},
	{Name: "Risked >1% per trade", Description: "Violated position sizing rules", Category: CategoryRisk},
	{Name: "No diversification", Description: "Too concentrated in one asset/strategy", Category: CategoryRisk},
	{Name: "Ignored correlation", Description: "Did not account for related asset movements", Category: CategoryRisk},

	// Psychology
	{Name: "FOMO trading", Description: "Entered due to fear of missing out", Category: CategoryPsychology},
	{Name: "Revenge trading", Description: "Traded to recover losses after bad trade", Category: CategoryPsychology},
	{Name: "Overconfidence", Description: "Traded too aggressively after wins", Category: CategoryPsychology},
	{Name: "Hesitation", Description: "Failed to act on valid signals due to fear", Category: CategoryPsychology},
	{Name: "Confirmation bias", Description: "Only saw evidence supporting desired outcome", Category: CategoryPsychology},

	// Analysis
	{Name: "Insufficient research", Description: "Did not properly analyze fundamentals/technicals", Category: CategoryAnalysis},
	{Name: "Ignored news/events", Description: "Failed to account for scheduled news or events", Category: CategoryAnalysis},
	{Name: "Over-relied on indicators", Description: "Used too many conflicting signals", Category: CategoryAnalysis},
	{Name: "Recency bias", Description: "Based decisions on recent events only", Category: CategoryAnalysis},

	// Execution
	{Name: "Slippage", Description: "Got worse price than expected due to market movement", Category: CategoryExecution},
	{Name: "Poor order type", Description: "Used market order when limit would have been better", Category: CategoryExecution},
	{Name: "Partial fill issues", Description: "Did not account for partial order fills", Category: CategoryExecution},
	{Name: "Platform errors", Description: "Mistakes due to trading platform issues", Category: CategoryExecution},

	// Other
	{Name: "Journal not updated", Description: "Failed to record trade details properly", Category: CategoryOther},
	{Name: "No trading plan", Description: "Traded without predefined strategy", Category: CategoryOther},
	{Name: "Market hours mistake", Description: "Traded during unfavorable market hours", Category: CategoryOther},
	{Name: "Cost ignorance", Description: "Did not account for fees, spreads, commissions", Category: CategoryOther},
}
