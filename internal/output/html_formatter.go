package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with an inline SVG chart.
type HTMLFormatter struct {
	Currency string
}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

// WithCurrency returns a copy printing amounts with symbol.
func (h HTMLFormatter) WithCurrency(symbol string) Formatter {
	h.Currency = symbol
	return h
}

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

// "curr" is rebound per report so it carries the currency symbol.
var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": func(v float64) string { return FormatCurrency("", v) },
	"pct":  FormatPercentage,
}).Parse(htmlTemplateSource))

type spendingRow struct {
	Category string
	Amount   float64
}

func (h HTMLFormatter) Format(p *domain.Projection) ([]byte, error) {
	symbol := currencyOr(h.Currency)
	tmpl, err := htmlTemplate.Clone()
	if err != nil {
		return nil, err
	}
	tmpl.Funcs(template.FuncMap{
		"curr": func(v float64) string { return FormatCurrency(symbol, v) },
	})

	rows := make([]spendingRow, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		rows = append(rows, spendingRow{Category: string(c), Amount: p.Spending.Amount(c)})
	}
	data := struct {
		*domain.Projection
		Chart         bandChart
		Assumptions   []string
		SpendingRows  []spendingRow
		ShowAge       bool
		GeneratedDate string
	}{
		Projection:    p,
		Chart:         buildBandChart(p, symbol),
		Assumptions:   GenerateAssumptions(p),
		SpendingRows:  rows,
		ShowAge:       len(p.Yearly) > 0 && p.Yearly[0].Age > 0,
		GeneratedDate: p.GeneratedAt.Format("2006-01-02 15:04"),
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
