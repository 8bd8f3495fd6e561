package jobs

import (
	"context"
	"fmt"
	"time"

	"haulage/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultLowStockSchedule runs the watch every fifteen minutes.
const DefaultLowStockSchedule = "*/15 * * * *"

// LowStockLister is the materials query the job runs.
type LowStockLister interface {
	Handle(ctx context.Context, query queries.ListMaterialsQuery) ([]queries.MaterialView, error)
}

// LowStockGauge receives the number of materials below the threshold.
type LowStockGauge interface {
	LowStockMaterials(n int)
}

// LowStockWatchJob periodically lists the materials whose stock fell below
// the threshold, logs each of them and reports the count.
type LowStockWatchJob struct {
	lister    LowStockLister
	gauge     LowStockGauge
	threshold decimal.Decimal
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    zerolog.Logger
}

func NewLowStockWatchJob(
	lister LowStockLister,
	gauge LowStockGauge,
	threshold decimal.Decimal,
	schedule string,
	logger zerolog.Logger,
) *LowStockWatchJob {
	if schedule == "" {
		schedule = DefaultLowStockSchedule
	}
	logger = logger.With().Str("component", "low_stock_watch_job").Logger()
	cronLog := cronLogger{logger: logger}

	return &LowStockWatchJob{
		lister:    lister,
		gauge:     gauge,
		threshold: threshold,
		schedule:  schedule,
		timeout:   30 * time.Second,
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger: logger,
	}
}

func (j *LowStockWatchJob) Name() string {
	return "low stock watch"
}

// Start schedules the watch. An invalid schedule is reported here rather
// than at the first tick.
func (j *LowStockWatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.Error().Err(err).Msg("low stock watch failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Str("threshold", j.threshold.String()).Msg("low stock watch started")
	return nil
}

// Stop waits for a running check to finish.
func (j *LowStockWatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("low stock watch stopped")
}

// Run performs one check and returns the materials below the threshold.
func (j *LowStockWatchJob) Run(ctx context.Context) ([]queries.MaterialView, error) {
	query, err := queries.NewListMaterialsQuery(true, j.threshold)
	if err != nil {
		return nil, err
	}
	low, err := j.lister.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, m := range low {
		j.logger.Warn().
			Str("material", m.Name).
			Str("stock", m.Stock.String()).
			Str("unit", m.Unit).
			Str("threshold", j.threshold.String()).
			Msg("material stock is low")
	}
	if j.gauge != nil {
		j.gauge.LowStockMaterials(len(low))
	}
	return low, nil
}

// cronLogger routes the scheduler's own messages through zerolog.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
