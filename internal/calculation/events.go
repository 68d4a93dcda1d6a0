package calculation

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// EventKind is a life event drawn once per simulated month.
type EventKind int

const (
	EventNone EventKind = iota
	EventLayoff
	EventBonus
	EventChildBirth
	EventPromotion
	eventKindCount
)

// Effects of each event.
const (
	LayoffSalaryFactor   = 0.5
	LayoffRecoveryMonths = 6
	BonusAmount          = 5000.0
	ChildExpense         = 800.0
	PromotionFactor      = 1.2
)

var eventNames = [eventKindCount]string{"none", "layoff", "bonus", "child_birth", "promotion"}

func (k EventKind) String() string {
	if k < 0 || k >= eventKindCount {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return eventNames[k]
}

// ParseEventKind resolves an event name; "child" is accepted for child_birth.
func ParseEventKind(s string) (EventKind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	if n == "child" || n == "childbirth" {
		return EventChildBirth, nil
	}
	for i, name := range eventNames {
		if n == name {
			return EventKind(i), nil
		}
	}
	return EventNone, domain.NewConfigurationError("events", "unknown event %q", s)
}

// EventDrawer yields the event for a month. Implementations must consume
// exactly one value from rng per call so that return draws stay aligned.
type EventDrawer interface {
	Draw(month int, rng *rand.Rand) EventKind
}

// EventDistribution is a discrete distribution over the event kinds.
type EventDistribution struct {
	None       float64 `json:"none"`
	Layoff     float64 `json:"layoff"`
	Bonus      float64 `json:"bonus"`
	ChildBirth float64 `json:"child_birth"`
	Promotion  float64 `json:"promotion"`
}

// DefaultEventDistribution returns the 90/3/3/2/2 mix.
func DefaultEventDistribution() EventDistribution {
	return EventDistribution{None: 0.90, Layoff: 0.03, Bonus: 0.03, ChildBirth: 0.02, Promotion: 0.02}
}

// QuietEventDistribution puts all mass on EventNone.
func QuietEventDistribution() EventDistribution {
	return EventDistribution{None: 1}
}

func (d EventDistribution) weights() [eventKindCount]float64 {
	return [eventKindCount]float64{d.None, d.Layoff, d.Bonus, d.ChildBirth, d.Promotion}
}

// Validate requires non-negative weights summing to one.
func (d EventDistribution) Validate() error {
	var sum float64
	for i, w := range d.weights() {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return domain.NewConfigurationError("events.probabilities."+eventNames[i], "must be a non-negative finite number, got %v", w)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		return domain.NewConfigurationError("events.probabilities", "must sum to 1, got %.6f", sum)
	}
	return nil
}

// Draw maps one uniform variate onto the cumulative weights.
func (d EventDistribution) Draw(_ int, rng *rand.Rand) EventKind {
	u := rng.Float64()
	var cum float64
	w := d.weights()
	for i := EventNone; i < eventKindCount; i++ {
		cum += w[i]
		if u < cum {
			return i
		}
	}
	// Rounding can leave u above the last cumulative weight; fall back to the
	// last kind with non-zero mass.
	for i := eventKindCount - 1; i >= EventNone; i-- {
		if w[i] > 0 {
			return i
		}
	}
	return EventNone
}

// ScriptedEvents forces specific events in specific months; every other month
// resolves to EventNone.
type ScriptedEvents map[int]EventKind

// Draw returns the scripted event and still consumes one variate.
func (s ScriptedEvents) Draw(month int, rng *rand.Rand) EventKind {
	_ = rng.Float64()
	return s[month]
}

// Validate rejects months outside the horizon.
func (s ScriptedEvents) Validate(horizonMonths int) error {
	months := make([]int, 0, len(s))
	for m := range s {
		months = append(months, m)
	}
	sort.Ints(months)
	for _, m := range months {
		if m < 1 || m > horizonMonths {
			return domain.NewConfigurationError("events.scripted", "month %d outside horizon 1..%d", m, horizonMonths)
		}
		if k := s[m]; k < EventNone || k >= eventKindCount {
			return domain.NewConfigurationError("events.scripted", "month %d has unknown event %d", m, int(k))
		}
	}
	return nil
}

// eventOutcome reports what applyEvent changed.
type eventOutcome struct {
	restored bool
}

// applyEvent mutates state for the drawn event of month m (1-based).
// A layoff cannot start while another is being recovered from, and an active
// recovery suppresses the other events for that month.
func applyEvent(st *domain.ScenarioState, ev EventKind, m int, initialSalary, salaryGrowth float64) eventOutcome {
	var out eventOutcome
	if ev == EventLayoff && st.LayoffMonthsRemaining == 0 {
		st.Salary *= LayoffSalaryFactor
		st.LayoffMonthsRemaining = LayoffRecoveryMonths
	}
	switch {
	case st.LayoffMonthsRemaining > 0:
		st.LayoffMonthsRemaining--
		if st.LayoffMonthsRemaining == 0 {
			st.Salary = initialSalary * math.Pow(1+salaryGrowth, float64(elapsedYears(m)))
			out.restored = true
		}
	case ev == EventBonus:
		st.Wealth += BonusAmount
	case ev == EventChildBirth:
		st.ChildActive = true
	case ev == EventPromotion:
		st.Salary *= PromotionFactor
	}
	return out
}

// applyAnnualGrowth compounds salary at the start of every year after the first.
func applyAnnualGrowth(st *domain.ScenarioState, m int, salaryGrowth float64) {
	if m > 1 && m%12 == 1 {
		st.Salary *= 1 + salaryGrowth
	}
}

// elapsedYears is the number of whole years completed before month m.
func elapsedYears(m int) int { return (m - 1) / 12 }
