package screening

import (
	"fmt"
	"strings"

	"github.com/ternarybob/dhandho/internal/models"
)

// RenderReport renders the consolidated plain-text report for a run.
func RenderReport(report *models.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Value screening report (%s)\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	for _, section := range report.Sections {
		sb.WriteString("\n")
		sb.WriteString(renderSectionResult(section))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// RenderAnalysis renders a single-ticker analysis for chat output.
func RenderAnalysis(a *models.Analysis) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", a.Ticker)
	fmt.Fprintf(&sb, "Price: $%.2f\n", a.CurrentPrice)
	fmt.Fprintf(&sb, "Intrinsic value: $%.2f\n", a.IntrinsicValue)
	fmt.Fprintf(&sb, "Safety margin: %.2f%%\n", a.SafetyMargin)
	fmt.Fprintf(&sb, "Trailing P/E: %.2f (industry %.2f, discount %.2f%%)\n", a.TrailingPE, a.IndustryPE, a.PEDiscount)
	fmt.Fprintf(&sb, "Moat: %s | Consistency: %s | Track record: %s\n",
		yesNo(a.Moat), yesNo(a.Consistency), yesNo(a.TrackRecord))
	fmt.Fprintf(&sb, "CAGR: %.2f%%\n", a.CAGR)
	fmt.Fprintf(&sb, "Score: %.2f\n", a.Score)

	if a.BuyRecommendation {
		sb.WriteString("Buy recommendation: ✅ yes\n")
	} else {
		sb.WriteString("Buy recommendation: ❌ no\n")
	}

	if a.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", a.Description)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func renderSectionStart(index models.Index, count int) string {
	return fmt.Sprintf("Screening %s (%d tickers)...", index.DisplayName(), count)
}

func renderSectionUnavailable(index models.Index) string {
	return fmt.Sprintf("%s: universe unavailable this run", index.DisplayName())
}

// renderSectionResult renders one index section. A section with zero
// candidates still produces an explicit "no candidates" line.
func renderSectionResult(section models.ReportSection) string {
	name := section.Index.DisplayName()

	if section.Unavailable {
		return renderSectionUnavailable(section.Index)
	}

	if len(section.Candidates) == 0 {
		return fmt.Sprintf("%s: no candidates found (%d tickers analyzed)", name, section.Analyzed)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d candidate(s) from %d analyzed\n", name, len(section.Candidates), section.Analyzed)
	for _, c := range section.Candidates {
		fmt.Fprintf(&sb, "  %s  $%.2f  intrinsic $%.2f  margin %.2f%%\n",
			c.Ticker, c.CurrentPrice, c.IntrinsicValue, c.SafetyMargin)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
