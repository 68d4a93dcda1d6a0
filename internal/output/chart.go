package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// Chart geometry in SVG user units.
const (
	chartWidth   = 860
	chartHeight  = 360
	chartPadLeft = 90
	chartPadSide = 20
	chartPadBot  = 40
	chartYTicks  = 5
)

// bandChart is the precomputed geometry of the wealth band chart.
type bandChart struct {
	Width, Height int
	Band          string // polygon points, P90 forward then P10 back
	Median        string
	Ideal         string
	Savings       string
	XTicks        []chartTick
	YTicks        []chartTick
	PlotLeft      int
	PlotRight     int
	PlotTop       int
	PlotBottom    int
}

type chartTick struct {
	Pos   float64
	Label string
}

// buildBandChart scales the ensemble band and both deterministic paths into
// one SVG viewport. Amounts are labelled with currency symbol.
func buildBandChart(p *domain.Projection, symbol string) bandChart {
	c := bandChart{
		Width: chartWidth, Height: chartHeight,
		PlotLeft: chartPadLeft, PlotRight: chartWidth - chartPadSide,
		PlotTop: chartPadSide, PlotBottom: chartHeight - chartPadBot,
	}
	if p.Ensemble == nil || len(p.Ensemble.Bands) == 0 {
		return c
	}
	bands := p.Ensemble.Bands
	horizon := len(bands) - 1

	maxY := 0.0
	for _, b := range bands {
		maxY = math.Max(maxY, b.P90)
		maxY = math.Max(maxY, seriesAt(p.Ideal, b.Month))
		maxY = math.Max(maxY, seriesAt(p.Savings, b.Month))
	}
	if maxY <= 0 {
		maxY = 1
	}
	maxY = niceCeil(maxY)

	x := func(m int) float64 {
		if horizon == 0 {
			return float64(c.PlotLeft)
		}
		return float64(c.PlotLeft) + float64(m)/float64(horizon)*float64(c.PlotRight-c.PlotLeft)
	}
	y := func(v float64) float64 {
		return float64(c.PlotBottom) - v/maxY*float64(c.PlotBottom-c.PlotTop)
	}
	pt := func(m int, v float64) string { return fmt.Sprintf("%.1f,%.1f", x(m), y(v)) }

	var band, median, ideal, savings []string
	for _, b := range bands {
		band = append(band, pt(b.Month, b.P90))
		median = append(median, pt(b.Month, b.Median))
		ideal = append(ideal, pt(b.Month, seriesAt(p.Ideal, b.Month)))
		savings = append(savings, pt(b.Month, seriesAt(p.Savings, b.Month)))
	}
	for i := len(bands) - 1; i >= 0; i-- {
		band = append(band, pt(bands[i].Month, bands[i].P10))
	}
	c.Band = strings.Join(band, " ")
	c.Median = strings.Join(median, " ")
	c.Ideal = strings.Join(ideal, " ")
	c.Savings = strings.Join(savings, " ")

	for i := 0; i <= chartYTicks; i++ {
		v := maxY * float64(i) / chartYTicks
		c.YTicks = append(c.YTicks, chartTick{Pos: y(v), Label: FormatCurrency(symbol, v)})
	}
	years := horizon / 12
	step := 1
	for years/step > 10 {
		step++
	}
	if years == 0 {
		c.XTicks = append(c.XTicks, chartTick{Pos: x(0), Label: "0"}, chartTick{Pos: x(horizon), Label: fmt.Sprintf("%dm", horizon)})
	}
	for yr := 0; yr <= years && years > 0; yr += step {
		c.XTicks = append(c.XTicks, chartTick{Pos: x(yr * 12), Label: fmt.Sprintf("y%d", yr)})
	}
	return c
}

// niceCeil rounds v up to 1, 2 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}
