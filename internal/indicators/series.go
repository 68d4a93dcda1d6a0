package indicators

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrDataUnavailable marks a series that could not be fetched or parsed.
// It is logged and replaced by a fallback; callers of Provider never see it.
var ErrDataUnavailable = errors.New("indicator data unavailable")

// TradingDaysPerYear annualizes daily volatility.
const TradingDaysPerYear = 252

// bcbPoint is one row of the central bank SGS API.
type bcbPoint struct {
	Data  string `json:"data"`
	Valor string `json:"valor"`
}

// chartResponse is the subset of the chart API payload that is read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// closes flattens the first quote series, dropping null and non-positive prices.
func (r chartResponse) closes() ([]float64, error) {
	if r.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrDataUnavailable, r.Chart.Error.Description)
	}
	if len(r.Chart.Result) == 0 || len(r.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: empty chart result", ErrDataUnavailable)
	}
	raw := r.Chart.Result[0].Indicators.Quote[0].Close
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		if v != nil && *v > 0 && !math.IsInf(*v, 0) {
			out = append(out, *v)
		}
	}
	return out, nil
}

// inflationFromIPCA averages the monthly IPCA percentages, as the source
// series reports them, into a fraction.
func inflationFromIPCA(points []bcbPoint) (float64, error) {
	if len(points) == 0 {
		return 0, fmt.Errorf("%w: no IPCA observations", ErrDataUnavailable)
	}
	values := make([]float64, 0, len(points))
	for _, p := range points {
		v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(p.Valor), ",", ".", 1), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad IPCA value %q", ErrDataUnavailable, p.Valor)
		}
		values = append(values, v)
	}
	return mean(values) / 100, nil
}

// fixedIncomeFromRate compounds the mean quoted rate twelve times.
func fixedIncomeFromRate(closes []float64) (float64, error) {
	if len(closes) == 0 {
		return 0, fmt.Errorf("%w: no fixed-income quotes", ErrDataUnavailable)
	}
	return math.Pow(1+mean(closes)/100, 12) - 1, nil
}

// equityFromIndex returns the annualized two-year return and the annualized
// volatility of daily changes.
func equityFromIndex(closes []float64) (ret, vol float64, err error) {
	if len(closes) < 3 {
		return 0, 0, fmt.Errorf("%w: need at least 3 index closes, got %d", ErrDataUnavailable, len(closes))
	}
	ret = math.Pow(closes[len(closes)-1]/closes[0], 0.5) - 1
	changes := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		changes = append(changes, closes[i]/closes[i-1]-1)
	}
	vol = sampleStdDev(changes) * math.Sqrt(TradingDaysPerYear)
	return ret, vol, nil
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
