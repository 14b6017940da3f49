// Package ts — табу-поиск для flow-shop поверх обобщённого движка tabu.
package ts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"metaheuristics/internal/flowshop"
	"metaheuristics/internal/opt"
	"metaheuristics/internal/tabu"
)

// Solver - структура реализации табу-поиска.
type Solver struct {
	Cfg    Config
	Rng    *rand.Rand
	Logger *slog.Logger
}

// New возвращает новый TS-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve — запуск табу-поиска из случайной перестановки.
func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()

	// Валидация входных данных
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	// Оценка целевой функции
	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	engineCfg := tabu.Config{
		AcceptableScore: s.acceptableScore(),
		TabuTenure:      s.Cfg.TabuTenure,
		MaxIterations:   s.Cfg.maxIterations(inst.Jobs),
		Aspiration:      s.Cfg.Aspiration,
	}
	engine, err := tabu.New(engineCfg, eval.Score, s.neighbors, flowshop.Key)
	if err != nil {
		return opt.Result{}, err
	}
	engine.Logger = s.Logger

	initial := flowshop.RandomPermutation(inst.Jobs, s.Rng)

	res, err := engine.Run(ctx, initial)
	if err != nil && !errors.Is(err, ctx.Err()) {
		return opt.Result{}, err
	}

	out := opt.Result{
		Permutation: append([]int(nil), res.Best...),
		Makespan:    int(res.BestScore),
		Evaluations: eval.Calls(),
		Iterations:  res.Iterations,
		Stopped:     string(res.Reason),
		Duration:    time.Since(start),
		Meta: map[string]any{
			"tabu_tenure":        s.Cfg.TabuTenure,
			"neighbors_per_iter": s.Cfg.NeighborsPerIter,
			"neighborhood":       string(s.Cfg.Neighborhood),
			"aspiration":         s.Cfg.Aspiration,
			"last_makespan":      int(res.Score),
		},
	}
	return out, err
}

// acceptableScore переводит целевой makespan в порог движка:
// makespan целочисленный, поэтому makespan <= T эквивалентно makespan < T+0.5.
func (s *Solver) acceptableScore() float64 {
	if s.Cfg.TargetMakespan <= 0 {
		return math.Inf(-1)
	}
	return float64(s.Cfg.TargetMakespan) + 0.5
}

// neighbors генерирует NeighborsPerIter случайных ходов из перестановки curr.
// Порядок соседей совпадает с порядком генерации.
func (s *Solver) neighbors(curr []int) ([][]int, error) {
	n := len(curr)
	if n < 2 {
		return nil, nil
	}

	out := make([][]int, 0, s.Cfg.NeighborsPerIter)
	for k := 0; k < s.Cfg.NeighborsPerIter; k++ {
		from := s.Rng.Intn(n)
		to := s.Rng.Intn(n - 1)
		if to >= from {
			to++
		}

		// Формирование соседнего решения
		cand := make([]int, n)
		copy(cand, curr)
		switch s.Cfg.Neighborhood {
		case NeighborhoodSwap:
			flowshop.Swap(cand, from, to)
		default:
			flowshop.Insert(cand, from, to)
		}
		out = append(out, cand)
	}
	return out, nil
}
