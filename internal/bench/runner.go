// Package bench прогоняет солверы на сериях экземпляров и собирает статистику.
package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"metaheuristics/internal/flowshop"
	"metaheuristics/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) (opt.Optimizer, error)
}

type Case struct {
	Jobs         int
	Machines     int
	InstanceSeed int64
}

type Record struct {
	RunID    string
	Algo     string
	Jobs     int
	Machines int
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64

	// Среднее число вычислений целевой функции за запуск.
	EvaluationsMean float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = без ограничения
	// Количество одновременных запусков; <= 1 — последовательно.
	Parallel int

	// Границы длительностей операций в генерируемых экземплярах.
	MinTime int
	MaxTime int

	RunID  string
	Logger *slog.Logger
}

type runOutcome struct {
	makespan    int
	evaluations int
	timeMs      float64
}

// Instance генерирует экземпляр задачи для серии.
func (r Runner) Instance(c Case) (*flowshop.Instance, error) {
	minTime, maxTime := r.MinTime, r.MaxTime
	if minTime == 0 && maxTime == 0 {
		minTime, maxTime = 1, 99
	}
	return flowshop.RandomInstance(c.Jobs, c.Machines, minTime, maxTime, randForSeed(c.InstanceSeed))
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	if r.Runs <= 0 {
		return Record{}, fmt.Errorf("количество запусков должно быть > 0 (получено %d)", r.Runs)
	}
	inst, err := r.Instance(c)
	if err != nil {
		return Record{}, err
	}
	log := r.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	outcomes := make([]runOutcome, r.Runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Parallel, 1))

	for i := 0; i < r.Runs; i++ {
		g.Go(func() error {
			runSeed := r.BaseSeed + int64(i)

			op, err := algo.Factory(runSeed)
			if err != nil {
				return fmt.Errorf("запуск %d: создание солвера: %w", i, err)
			}

			runCtx := gctx
			cancel := func() {}
			if r.PerRunTimeout > 0 {
				runCtx, cancel = context.WithTimeout(gctx, r.PerRunTimeout)
			}
			start := time.Now()
			res, err := op.Solve(runCtx, inst)
			dur := time.Since(start)
			cancel()

			if err != nil && runCtx.Err() != nil {
				return fmt.Errorf("запуск %d: отмена/таймаут: %w", i, err)
			}
			if err != nil {
				return fmt.Errorf("запуск %d: ошибка солвера: %w", i, err)
			}
			if len(res.Permutation) != inst.Jobs {
				return fmt.Errorf("запуск %d: некорректная длина перестановки %d (ожидалось %d)", i, len(res.Permutation), inst.Jobs)
			}

			outcomes[i] = runOutcome{
				makespan:    res.Makespan,
				evaluations: res.Evaluations,
				timeMs:      float64(dur.Microseconds()) / 1000.0,
			}
			log.Debug("запуск завершён",
				"algo", algo.Name,
				"run", i,
				"seed", runSeed,
				"makespan", res.Makespan,
				"iterations", res.Iterations,
				"stopped", res.Stopped,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Record{}, err
	}

	makespans := make([]int, r.Runs)
	timesMs := make([]float64, r.Runs)
	evals := make([]float64, r.Runs)
	for i, o := range outcomes {
		makespans[i] = o.makespan
		timesMs[i] = o.timeMs
		evals[i] = float64(o.evaluations)
	}

	msStats := CalcIntStats(makespans)
	tStats := CalcFloatStats(timesMs)
	evStats := CalcFloatStats(evals)

	return Record{
		RunID:    r.RunID,
		Algo:     algo.Name,
		Jobs:     c.Jobs,
		Machines: c.Machines,
		Runs:     r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: msStats.Best,
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,

		EvaluationsMean: evStats.Mean,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"run_id", "algo", "jobs", "machines", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"makespan_best", "makespan_mean", "makespan_std",
		"evaluations_mean",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.RunID,
			r.Algo,
			itoa(r.Jobs),
			itoa(r.Machines),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),

			ftoa(r.EvaluationsMean),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
