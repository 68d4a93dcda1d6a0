package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// CSVFormatter writes one row per month: the ensemble band plus both
// deterministic paths.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(p *domain.Projection) ([]byte, error) {
	if p.Ensemble == nil {
		return nil, fmt.Errorf("projection has no ensemble")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"month", "median", "p10", "p90", "ideal", "savings"}); err != nil {
		return nil, err
	}
	for _, b := range p.Ensemble.Bands {
		row := []string{
			strconv.Itoa(b.Month),
			plain(b.Median),
			plain(b.P10),
			plain(b.P90),
			plain(seriesAt(p.Ideal, b.Month)),
			plain(seriesAt(p.Savings, b.Month)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// YearlyCSVFormatter writes the yearly table.
type YearlyCSVFormatter struct{}

func (c YearlyCSVFormatter) Name() string      { return "yearly-csv" }
func (c YearlyCSVFormatter) Extension() string { return "csv" }

func (c YearlyCSVFormatter) Format(p *domain.Projection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"year", "month", "age", "median", "ideal", "savings"}); err != nil {
		return nil, err
	}
	for _, y := range p.Yearly {
		age := ""
		if y.Age > 0 {
			age = strconv.Itoa(y.Age)
		}
		row := []string{strconv.Itoa(y.Year), strconv.Itoa(y.Month), age, plain(y.Median), plain(y.Ideal), plain(y.Savings)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func seriesAt(s domain.DeterministicSeries, m int) float64 {
	if m < 0 || m >= len(s) {
		return 0
	}
	return s[m]
}
