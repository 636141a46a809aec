package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blackwell-systems/repograde/internal/score"
	"github.com/blackwell-systems/repograde/internal/store"
)

// categoryOrder fixes the rendering order of the category table.
var categoryOrder = []string{"structure", "quality", "performance", "security", "testing", "devexp", "completeness"}

// RenderReport renders a full scoring report for one run.
func RenderReport(root string, res *score.OverallResult, topN int) string {
	var sb strings.Builder

	sb.WriteString(Section("Project Score"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf(" %s  %s\n", StyleBold.Render(root), StyleMuted.Render(fmt.Sprintf("grade %s", res.Grade))))
	sb.WriteString(fmt.Sprintf(" %s %s\n", GradeBadge(res.Grade), ScoreBar(res.Percentage, 30)))

	sb.WriteString(Section("Categories"))
	sb.WriteString("\n\n")
	sb.WriteString(renderCategoryTable(res))

	if issues := renderIssues(res); issues != "" {
		sb.WriteString(Section("Issues"))
		sb.WriteString("\n\n")
		sb.WriteString(issues)
	}

	if len(res.Summary.Failed) > 0 {
		sb.WriteString(Section("Failed Analyzers"))
		sb.WriteString("\n\n")
		for _, name := range res.Summary.Failed {
			sb.WriteString(fmt.Sprintf(" %s %s: %s\n", StyleError.Render("✗"), name, res.Categories[name].Err))
		}
	}

	if len(res.Recommendations) > 0 {
		sb.WriteString(Section("Recommendations"))
		sb.WriteString("\n\n")
		sb.WriteString(RenderRecommendations(res.Recommendations, topN))
	}

	return sb.String()
}

func renderCategoryTable(res *score.OverallResult) string {
	tbl := NewTable("Category", "Score", "Grade", "")
	for _, name := range orderedCategories(res) {
		cat := res.Categories[name]
		if cat.Err != "" {
			tbl.AddRow(name, "-", "-", StyleError.Render("failed"))
			continue
		}
		pct := score.Percentage(cat.Score, cat.MaxScore)
		tbl.AddRow(
			name,
			fmt.Sprintf("%.1f/%.0f", cat.Score, cat.MaxScore),
			score.GradeFor(pct),
			ScoreBar(pct, 10),
		)
	}
	return tbl.Render()
}

func renderIssues(res *score.OverallResult) string {
	var sb strings.Builder
	for _, name := range orderedCategories(res) {
		for _, issue := range res.Categories[name].Issues {
			sb.WriteString(fmt.Sprintf(" %s %s %s\n",
				StyleWarning.Render("•"),
				StyleMuted.Render("["+name+"]"),
				issue.Message))
			if issue.Detail != "" {
				sb.WriteString(fmt.Sprintf("     %s\n", StyleMuted.Render(issue.Detail)))
			}
		}
	}
	return sb.String()
}

// RenderRecommendations lists ranked recommendations, highest value first.
func RenderRecommendations(recs []score.Suggestion, topN int) string {
	if topN > 0 && topN < len(recs) {
		recs = recs[:topN]
	}
	var sb strings.Builder
	for i, rec := range recs {
		sb.WriteString(fmt.Sprintf(" %d. %s %s\n", i+1, PriorityTag(rec.Priority), rec.Text))
		sb.WriteString(fmt.Sprintf("    %s\n", StyleMuted.Render(
			fmt.Sprintf("%s · up to %.1f points", rec.Category, rec.Impact))))
	}
	return sb.String()
}

// RenderChecks renders the verbose per-check breakdown for every category.
func RenderChecks(res *score.OverallResult) string {
	var sb strings.Builder
	for _, name := range orderedCategories(res) {
		cat := res.Categories[name]
		if len(cat.Checks) == 0 {
			continue
		}
		sb.WriteString(Section(name))
		sb.WriteString("\n\n")
		for _, check := range cat.Checks {
			marker := StyleSuccess.Render("✓")
			if check.Points == 0 {
				marker = StyleError.Render("✗")
			} else if check.Points < check.Max {
				marker = StyleWarning.Render("~")
			}
			sb.WriteString(fmt.Sprintf(" %s %-32s %.1f/%.1f\n", marker, check.Reason, check.Points, check.Max))
		}
	}
	return sb.String()
}

// RenderHistory renders saved runs, newest first.
func RenderHistory(runs []store.Run) string {
	tbl := NewTable("ID", "Scored At", "Project", "Score", "Grade")
	for _, r := range runs {
		tbl.AddRow(
			fmt.Sprintf("%d", r.ID),
			r.ScoredAt.Format("2006-01-02 15:04"),
			r.Root,
			fmt.Sprintf("%.1f/%.0f", r.Score, r.MaxScore),
			r.Grade,
		)
	}
	return tbl.Render()
}

// RenderDiff renders the category deltas between the latest two runs.
func RenderDiff(diff *store.RunDiff) string {
	var sb strings.Builder
	sb.WriteString(Section("Run Comparison"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf(" %s → %s\n\n",
		StyleMuted.Render(diff.Previous.ScoredAt.Format("2006-01-02 15:04")),
		StyleBold.Render(diff.Current.ScoredAt.Format("2006-01-02 15:04"))))

	tbl := NewTable("Category", "Previous", "Current", "Trend")
	for _, d := range diff.Deltas {
		tbl.AddRow(
			d.Category,
			fmt.Sprintf("%.1f", d.Previous),
			fmt.Sprintf("%.1f", d.Current),
			TrendArrow(d.Delta),
		)
	}
	sb.WriteString(tbl.Render())

	overall := diff.Current.Score - diff.Previous.Score
	sb.WriteString(fmt.Sprintf("\n Overall: %s\n", TrendArrow(overall)))
	return sb.String()
}

// RenderOpenRecommendations renders persisted recommendations with their IDs
// so they can be accepted or dismissed.
func RenderOpenRecommendations(recs []store.Recommendation) string {
	tbl := NewTable("ID", "Priority", "Category", "Recommendation")
	for _, rec := range recs {
		tbl.AddRow(
			fmt.Sprintf("%d", rec.ID),
			PriorityTag(rec.Priority),
			rec.Category,
			rec.Text,
		)
	}
	return tbl.Render()
}

func orderedCategories(res *score.OverallResult) []string {
	var names []string
	seen := make(map[string]bool)
	for _, name := range categoryOrder {
		if _, ok := res.Categories[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	// Unknown categories render after the canonical set, sorted.
	var extra []string
	for name := range res.Categories {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
