// Package display renders recommendations and warnings for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/advisor/internal/models"
)

// ReportRenderer writes human-readable recommendation reports
type ReportRenderer struct {
	out      io.Writer
	useColor bool
}

// NewReportRenderer creates a renderer. When useColor is false all
// output is plain text.
func NewReportRenderer(out io.Writer, useColor bool) *ReportRenderer {
	return &ReportRenderer{out: out, useColor: useColor}
}

func (r *ReportRenderer) paint(c *color.Color, format string, args ...interface{}) string {
	if r.useColor {
		return c.Sprintf(format, args...)
	}
	return fmt.Sprintf(format, args...)
}

// Render writes one recommendation report
func (r *ReportRenderer) Render(rec *models.Recommendation) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	magenta := color.New(color.FgMagenta, color.Bold)

	title := rec.Endpoint
	if title == "" {
		title = "(unnamed endpoint)"
	}
	fmt.Fprintf(r.out, "%s\n", r.paint(cyan, "━━━ %s", title))

	fmt.Fprintf(r.out, "  Intent:     %s (confidence %.2f)\n",
		r.paint(green, "%s", strings.ToUpper(string(rec.Intent.Intent))), rec.Intent.Confidence)
	fmt.Fprintf(r.out, "              %s\n", rec.Intent.Rationale)

	fmt.Fprintf(r.out, "  Complexity: %s\n", r.paint(scoreColor(rec.Complexity.Value), "%d/10", rec.Complexity.Value))
	for _, factor := range rec.Complexity.Factors {
		fmt.Fprintf(r.out, "              +%d %s\n", factor.Points, factor.Name)
	}

	if rec.Boundary.FitsSingleAggregate {
		fmt.Fprintf(r.out, "  Boundary:   fits a single aggregate\n")
	} else {
		fmt.Fprintf(r.out, "  Boundary:   crosses aggregates; reference by ID: %s\n",
			r.paint(yellow, "%s", strings.Join(rec.Boundary.CrossAggregateReferences, ", ")))
	}

	fmt.Fprintf(r.out, "  Strategy:   %s\n", r.paint(magenta, "%s", strategyName(rec.Strategy.Chosen)))
	fmt.Fprintf(r.out, "              %s\n", rec.Strategy.Rationale)

	if len(rec.Strategy.SagaSteps) > 0 {
		fmt.Fprintf(r.out, "  Saga plan:\n")
		for i, step := range rec.Strategy.SagaSteps {
			marker := " "
			if step.IsPivot {
				marker = r.paint(yellow, "⟡")
			}
			fmt.Fprintf(r.out, "    %d.%s %s (%ds)", i+1, marker, step.Action, step.TimeoutSeconds)
			if step.Compensation != "" {
				fmt.Fprintf(r.out, " / compensate: %s", step.Compensation)
			} else if step.IsPivot {
				fmt.Fprintf(r.out, " / pivot: forward retry only beyond this step")
			}
			fmt.Fprintln(r.out)
		}
	}

	fmt.Fprintln(r.out)
}

func scoreColor(score int) *color.Color {
	switch {
	case score <= 3:
		return color.New(color.FgGreen)
	case score <= 6:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func strategyName(s models.Strategy) string {
	switch s {
	case models.StrategyACID:
		return "ACID transaction"
	case models.StrategySimpleCQRS:
		return "Simple CQRS"
	case models.StrategyChoreographedSaga:
		return "Choreographed Saga"
	case models.StrategyOrchestratedSaga:
		return "Orchestrated Saga"
	default:
		return string(s)
	}
}
