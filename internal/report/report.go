package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/crimson-sun/newsdesk/internal/dashboard"
	"github.com/crimson-sun/newsdesk/internal/engine/taxonomy"
	"github.com/crimson-sun/newsdesk/internal/model"
	"github.com/crimson-sun/newsdesk/internal/pipeline"
)

// MsgNoAnalysis replaces the whole report when the dataset is empty.
const MsgNoAnalysis = "no data found for analysis"

const (
	cellWidth = 60
	barWidth  = 30
)

// View selects what the report shows.
type View struct {
	Filter   dashboard.Filter
	Category string // empty shows the fallback category
	Limit    int    // max rows per message table, 0 for all
}

// DefaultView is the dashboard's initial state.
func DefaultView() View {
	return View{Filter: dashboard.DefaultFilter()}
}

// Render writes the terminal dashboard for one pipeline result.
func Render(w io.Writer, res pipeline.Result, v View, styles Styles) error {
	var sb strings.Builder

	for _, n := range res.Report.Notices {
		switch n.Level {
		case pipeline.LevelError:
			sb.WriteString(styles.Error.Render(n.Message))
		default:
			sb.WriteString(styles.Warning.Render(n.Message))
		}
		sb.WriteString("\n")
	}

	if len(res.Records) == 0 {
		sb.WriteString(styles.Error.Render(MsgNoAnalysis))
		sb.WriteString("\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	f := v.Filter
	search := f.Search
	f.Search = ""
	filtered := f.Apply(res.Records)

	sb.WriteString(styles.Title.Render("newsdesk"))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("showing hours %d:00 - %d:00, author: %s", f.HourFrom, f.HourTo, f.Author)))
	sb.WriteString("\n\n")

	sb.WriteString(metricsView(dashboard.Summarize(filtered, f), styles))
	sb.WriteString("\n")

	sb.WriteString(categoryView(dashboard.CategoryCounts(filtered), styles))

	label := v.Category
	if label == "" {
		label = taxonomy.Fallback
	}
	typed := dashboard.ByCategory(filtered, label)
	sb.WriteString(messageTable("messages of type: "+label, typed, v.Limit, false).View(styles))
	if len(typed) == 0 {
		sb.WriteString(styles.Muted.Render("no messages of this type in the selected hours"))
		sb.WriteString("\n")
	}

	timeline := NewTable("messages per hour and source", "hour", "source", "count")
	for _, c := range dashboard.HourlyBySource(filtered) {
		timeline.AddRow(strconv.Itoa(c.Hour), c.Source, strconv.Itoa(c.Count))
	}
	sb.WriteString(timeline.View(styles))

	authors := NewTable("top authors", "author", "messages")
	for _, c := range dashboard.TopAuthors(filtered, dashboard.DefaultTopAuthors) {
		authors.AddRow(truncate(c.Name, cellWidth), strconv.Itoa(c.Count))
	}
	sb.WriteString(authors.View(styles))

	if search != "" {
		found := dashboard.Search(filtered, search)
		sb.WriteString(styles.Section.Render(fmt.Sprintf("found %d results:", len(found))))
		sb.WriteString("\n")
		sb.WriteString(messageTable("", found, v.Limit, true).View(styles))
	}

	sb.WriteString(messageTable("all messages", filtered, v.Limit, false).View(styles))

	_, err := io.WriteString(w, sb.String())
	return err
}

func metricsView(m dashboard.Metrics, styles Styles) string {
	box := func(title, value string) string {
		return styles.Metric.Render(styles.Muted.Render(title) + "\n" + styles.Bold.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("total messages", strconv.Itoa(m.Total)),
		box("authors", strconv.Itoa(m.Authors)),
		box("avg messages per hour", strconv.FormatFloat(m.AvgPerHour, 'f', 1, 64)),
	) + "\n"
}

// categoryView draws a horizontal bar per label, scaled to the largest count.
func categoryView(counts []dashboard.Count, styles Styles) string {
	if len(counts) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(styles.Section.Render("message types"))
	sb.WriteString("\n")

	nameWidth := 0
	for _, c := range counts {
		if w := lipgloss.Width(c.Name); w > nameWidth {
			nameWidth = w
		}
	}
	peak := counts[0].Count
	for _, c := range counts {
		n := c.Count * barWidth / peak
		if n == 0 {
			n = 1
		}
		style := styles.labelStyle(c.Name)
		sb.WriteString(style.Width(nameWidth + 1).Render(c.Name))
		sb.WriteString(style.Render(strings.Repeat("█", n)))
		sb.WriteString(" " + strconv.Itoa(c.Count))
		sb.WriteString("\n")
	}
	return sb.String()
}

func messageTable(title string, records []model.Record, limit int, withSource bool) *Table {
	headers := []string{"timestamp", "author", "message", "description"}
	if withSource {
		headers = append(headers, "source")
	}
	t := NewTable(title, headers...)
	for i, r := range records {
		if limit > 0 && i >= limit {
			break
		}
		row := []string{
			model.Deref(r.Timestamp),
			truncate(model.Deref(r.Author), cellWidth),
			truncate(model.Deref(r.Message), cellWidth),
			truncate(model.Deref(r.Description), cellWidth),
		}
		if withSource {
			row = append(row, r.Source)
		}
		t.AddRow(row...)
	}
	return t
}
