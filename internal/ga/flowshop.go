package ga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"metaheuristics/internal/flowshop"
	"metaheuristics/internal/opt"
)

// FlowShopSolver решает flow-shop генетическим алгоритмом
// в кодировке случайных ключей: гены — ключи работ,
// перестановка получается сортировкой работ по ключу.
type FlowShopSolver struct {
	Cfg    Config
	Rng    *rand.Rand
	Logger *slog.Logger
}

// FlowShopDefaultConfig — параметры, подобранные под кодировку случайных ключей.
// AcceptableScore здесь — целевой makespan (0 — без цели).
func FlowShopDefaultConfig() Config {
	return Config{
		Generations:     400,
		ParentsMating:   30,
		Population:      150,
		InitLow:         0,
		InitHigh:        999,
		MutationLow:     -150,
		MutationHigh:    150,
		ParentSelection: SelectionTournament,
		TournamentSize:  5,
		KeepParents:     4,
		Crossover:       CrossoverTwoPoints,
		Mutation:        MutationSwap,
		MutationPercent: 10,
		AcceptableScore: 0,
	}
}

// NewFlowShop возвращает солвер с проверенной конфигурацией.
// Количество генов определяется экземпляром при вызове Solve.
func NewFlowShop(cfg Config, rng *rand.Rand) (*FlowShopSolver, error) {
	probe := cfg
	probe.Genes = max(probe.Genes, 1)
	if err := probe.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &FlowShopSolver{Cfg: cfg, Rng: rng}, nil
}

// Solve — реализация эвристики.
func (s *FlowShopSolver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}

	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	perm := make([]int, inst.Jobs)
	fitness := func(keys []int) (float64, error) {
		flowshop.DecodeRandomKeys(keys, perm)
		ms, err := eval.Makespan(perm)
		if err != nil {
			return 0, err
		}
		return 1 / float64(ms+1), nil
	}

	cfg := s.Cfg
	cfg.Genes = inst.Jobs
	cfg.InitialPopulation = nil
	// fitness = 1/(ms+1), поэтому цель ms <= T соответствует порогу T+1
	if cfg.AcceptableScore > 0 {
		cfg.AcceptableScore++
	}

	solver, err := New(cfg, fitness, s.Rng)
	if err != nil {
		return opt.Result{}, err
	}
	solver.Logger = s.Logger

	res, err := solver.Run(ctx)
	if err != nil && !errors.Is(err, ctx.Err()) {
		return opt.Result{}, err
	}

	best := make([]int, inst.Jobs)
	makespan := 0
	if len(res.Best) == inst.Jobs {
		flowshop.DecodeRandomKeys(res.Best, best)
		ms, msErr := eval.Makespan(best)
		if msErr != nil {
			return opt.Result{}, fmt.Errorf("makespan лучшего решения: %w", msErr)
		}
		makespan = ms
	}

	return opt.Result{
		Permutation: best,
		Makespan:    makespan,
		Evaluations: res.Evaluations,
		Iterations:  res.Generations,
		Stopped:     string(res.Stopped),
		Duration:    res.Duration,
		Meta: map[string]any{
			"population":       cfg.Population,
			"generations":      cfg.Generations,
			"parents_mating":   cfg.ParentsMating,
			"parent_selection": string(cfg.ParentSelection),
			"crossover":        string(cfg.Crossover),
			"mutation":         string(cfg.Mutation),
			"best_index":       res.Index,
		},
	}, err
}
