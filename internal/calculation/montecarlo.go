package calculation

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// DefaultTrials is the ensemble size used when none is configured.
const DefaultTrials = 500

// MonteCarloConfig holds configuration for an ensemble run.
type MonteCarloConfig struct {
	Trials       int
	Seed         int64 // 0 picks a fresh seed
	Workers      int   // 0 means GOMAXPROCS
	KeepTrials   bool  // retain every wealth path in the result
	TargetWealth float64
}

// MonteCarloAggregator runs independent trials and reduces them to monthly bands.
type MonteCarloAggregator struct {
	Trials       int
	Seed         int64
	Workers      int
	KeepTrials   bool
	TargetWealth float64
	Logger       Logger
}

// NewMonteCarloAggregator applies defaults to config.
func NewMonteCarloAggregator(config MonteCarloConfig) *MonteCarloAggregator {
	if config.Trials <= 0 {
		config.Trials = DefaultTrials
	}
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	return &MonteCarloAggregator{
		Trials:       config.Trials,
		Seed:         config.Seed,
		Workers:      config.Workers,
		KeepTrials:   config.KeepTrials,
		TargetWealth: config.TargetWealth,
		Logger:       NopLogger{},
	}
}

// Run executes the ensemble. Each trial owns its random stream and its own
// row of the result buffers; nothing is shared until the reduction. A
// cancelled context aborts the whole run without a partial result.
func (mca *MonteCarloAggregator) Run(ctx context.Context, params ScenarioParams, events EventDrawer) (*domain.EnsembleResult, error) {
	if params.HorizonMonths <= 0 {
		return nil, domain.NewConfigurationError("horizon_months", "must be positive, got %d", params.HorizonMonths)
	}
	sim := NewScenarioSimulator(params, events)

	wealth := make([][]float64, mca.Trials)
	savings := make([][]float64, mca.Trials)
	counts := make([][eventKindCount]int, mca.Trials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mca.Workers)
	for i := 0; i < mca.Trials; i++ {
		trial := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(TrialSeed(mca.Seed, trial)))
			path := sim.Run(rng)
			wealth[trial] = path.Wealth
			savings[trial] = path.Savings
			counts[trial] = path.Events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		mca.Logger.Warnf("Monte Carlo run aborted: %v", err)
		return nil, fmt.Errorf("monte carlo run: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("monte carlo run: %w", err)
	}

	result := &domain.EnsembleResult{
		Trials:       mca.Trials,
		Seed:         mca.Seed,
		Bands:        Summarize(wealth, savings),
		FinalWealth:  mca.finalWealthRanges(wealth),
		EventCounts:  totalEvents(counts),
		TargetWealth: mca.TargetWealth,
	}
	if mca.TargetWealth > 0 {
		result.GoalProbability = goalProbability(wealth, mca.TargetWealth)
	}
	if mca.KeepTrials {
		result.TrialPaths = wealth
	}
	mca.Logger.Debugf("Monte Carlo run finished: trials=%d months=%d seed=%d", mca.Trials, params.HorizonMonths, mca.Seed)
	return result, nil
}

func (mca *MonteCarloAggregator) finalWealthRanges(wealth [][]float64) domain.PercentileRanges {
	finals := make([]float64, len(wealth))
	for i, row := range wealth {
		finals[i] = row[len(row)-1]
	}
	sort.Float64s(finals)
	return percentileRanges(finals)
}

// goalProbability is the share of trials that end at or above target.
func goalProbability(wealth [][]float64, target float64) float64 {
	if len(wealth) == 0 {
		return 0
	}
	hits := 0
	for _, row := range wealth {
		if row[len(row)-1] >= target {
			hits++
		}
	}
	return float64(hits) / float64(len(wealth))
}

func totalEvents(counts [][eventKindCount]int) domain.EventCounts {
	out := make(domain.EventCounts, eventKindCount)
	for k := EventNone; k < eventKindCount; k++ {
		out[k.String()] = 0
	}
	for _, c := range counts {
		for k, n := range c {
			out[EventKind(k).String()] += n
		}
	}
	return out
}
