package output

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rpgo/wealth-projector/internal/domain"
)

// Theme colors (Flexoki Dark)
var (
	colorBorder = lipgloss.Color("#282726")
	colorText   = lipgloss.Color("#FFFCF0")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Width(60).
			Align(lipgloss.Center).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	goodStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle    = lipgloss.NewStyle().Foreground(colorOrange)
	alertStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// ConsoleFormatter renders a terminal summary with bordered tables.
type ConsoleFormatter struct {
	Currency string
}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

// WithCurrency returns a copy printing amounts with symbol.
func (c ConsoleFormatter) WithCurrency(symbol string) Formatter {
	c.Currency = symbol
	return c
}

func (c ConsoleFormatter) Format(p *domain.Projection) ([]byte, error) {
	if p.Ensemble == nil {
		return nil, fmt.Errorf("projection has no ensemble")
	}
	cur := func(v float64) string { return FormatCurrency(c.Currency, v) }
	var buf bytes.Buffer

	years := float64(p.HorizonMonths) / 12
	fmt.Fprintln(&buf, titleStyle.Render(fmt.Sprintf("WEALTH PROJECTION  %s years, %d trials",
		strconv.FormatFloat(years, 'f', -1, 64), p.Ensemble.Trials)))
	fmt.Fprintln(&buf)

	writeSection(&buf, "Starting point", RenderTable(
		[]string{"Item", "Value"},
		[][]string{
			{"Initial wealth", cur(p.InitialWealth)},
			{"Monthly salary", cur(p.InitialSalary)},
			{"Monthly expenses", cur(p.Budget.Expenses)},
			{"Monthly surplus", cur(p.Budget.Surplus)},
			{"Invested per month", cur(p.Budget.Contribution)},
		}))

	spendingRows := make([][]string, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		spendingRows = append(spendingRows, []string{string(cat), cur(p.Spending.Amount(cat))})
	}
	writeSection(&buf, "Spending", RenderTable([]string{"Category", "Monthly"}, spendingRows))

	yearly := make([][]string, 0, len(p.Yearly))
	showAge := len(p.Yearly) > 0 && p.Yearly[0].Age > 0
	headers := []string{"Year"}
	if showAge {
		headers = append(headers, "Age")
	}
	headers = append(headers, "Real life (median)", "Ideal", "Savings account")
	for _, y := range p.Yearly {
		row := []string{strconv.Itoa(y.Year)}
		if showAge {
			row = append(row, strconv.Itoa(y.Age))
		}
		row = append(row, cur(y.Median), cur(y.Ideal), cur(y.Savings))
		yearly = append(yearly, row)
	}
	writeSection(&buf, "Yearly outlook", RenderTable(headers, yearly))

	fw := p.Ensemble.FinalWealth
	finalRows := [][]string{
		{"Pessimistic (P10)", cur(fw.P10)},
		{"P25", cur(fw.P25)},
		{"Median (P50)", cur(fw.P50)},
		{"P75", cur(fw.P75)},
		{"Optimistic (P90)", cur(fw.P90)},
		{"Ideal path", cur(p.Ideal.Final())},
		{"Savings account", cur(p.Savings.Final())},
	}
	if p.Ensemble.TargetWealth > 0 {
		finalRows = append(finalRows, []string{
			"Chance of reaching " + cur(p.Ensemble.TargetWealth),
			FormatPercentage(p.Ensemble.GoalProbability),
		})
	}
	writeSection(&buf, "Final wealth", RenderTable([]string{"Outcome", "Value"}, finalRows))

	if len(p.Ensemble.EventCounts) > 0 {
		names := make([]string, 0, len(p.Ensemble.EventCounts))
		for name := range p.Ensemble.EventCounts {
			names = append(names, name)
		}
		sort.Strings(names)
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			perTrial := float64(p.Ensemble.EventCounts[name]) / float64(max(p.Ensemble.Trials, 1))
			rows = append(rows, []string{name, strconv.Itoa(p.Ensemble.EventCounts[name]), fmt.Sprintf("%.2f", perTrial)})
		}
		writeSection(&buf, "Life events drawn", RenderTable([]string{"Event", "Total", "Per trial"}, rows))
	}

	fmt.Fprintln(&buf, sectionStyle.Render("Assumptions"))
	for _, a := range GenerateAssumptions(p) {
		fmt.Fprintln(&buf, mutedStyle.Render("  - "+a))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("Suggestions"))
	for _, s := range p.Suggestions {
		fmt.Fprintln(&buf, "  "+suggestionStyle(s.Kind).Render(s.Message))
	}
	return buf.Bytes(), nil
}

func suggestionStyle(k domain.SuggestionKind) lipgloss.Style {
	switch k {
	case domain.SuggestOnTrack:
		return goodStyle
	case domain.SuggestDeficit:
		return alertStyle
	default:
		return warnStyle
	}
}

func writeSection(buf *bytes.Buffer, title, body string) {
	fmt.Fprintln(buf, sectionStyle.Render(title))
	fmt.Fprintln(buf, body)
	fmt.Fprintln(buf)
}

// RenderTable left-aligns the first column and right-aligns the rest.
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
	return t.Render()
}

// RenderTitle renders a boxed heading in the console theme.
func RenderTitle(title string) string { return titleStyle.Render(title) }

// RenderSection renders a section heading.
func RenderSection(title string) string { return sectionStyle.Render(title) }

// RenderMuted renders secondary text.
func RenderMuted(s string) string { return mutedStyle.Render(s) }
