// Package ga — генетический алгоритм над целочисленными хромосомами
// с именованными операторами отбора, скрещивания и мутации.
package ga

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// Fitness — функция приспособленности. Больше — лучше.
type Fitness func(genes []int) (float64, error)

// Solver — реализация генетического алгоритма.
type Solver struct {
	Cfg     Config
	Fitness Fitness
	Rng     *rand.Rand
	Logger  *slog.Logger
}

// New возвращает новый GA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
func New(cfg Config, fitness Fitness, rng *rand.Rand) (*Solver, error) {
	s := &Solver{Cfg: cfg, Fitness: fitness, Rng: rng}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Solver) validate() error {
	if err := s.Cfg.Validate(); err != nil {
		return err
	}
	if s.Fitness == nil {
		return fmt.Errorf("%w: функция приспособленности не задана (nil)", ErrInvalidConfig)
	}
	if s.Rng == nil {
		return fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return nil
}

// Run — основной цикл алгоритма.
func (s *Solver) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	if err := s.validate(); err != nil {
		return Result{}, err
	}
	log := s.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	cfg := s.Cfg.withInitialPopulation()
	popSize, genes := cfg.Population, cfg.Genes
	reach, hasReach := 0.0, cfg.AcceptableScore > 0
	if hasReach {
		reach = 1 / cfg.AcceptableScore
	}

	// Вспомогательная анонимная функция для создания двумерного массива хромосом
	makePop := func() [][]int {
		backing := make([]int, popSize*genes)
		pop := make([][]int, popSize)
		for i := range pop {
			pop[i] = backing[i*genes : (i+1)*genes]
		}
		return pop
	}

	// Две популяции: текущая (A) и следующая (B)
	popA := makePop()
	popB := makePop()
	fitness := make([]float64, popSize)

	// Инициализация начальной популяции
	if len(cfg.InitialPopulation) > 0 {
		for i, row := range cfg.InitialPopulation {
			copy(popA[i], row)
		}
	} else {
		span := cfg.InitHigh - cfg.InitLow + 1
		for i := range popA {
			for g := range popA[i] {
				popA[i][g] = cfg.InitLow + s.Rng.Intn(span)
			}
		}
	}

	evaluations := 0
	evaluate := func(pop [][]int) error {
		for i, chrom := range pop {
			f, err := s.Fitness(chrom)
			if err != nil {
				return fmt.Errorf("вычисление приспособленности особи %d: %w", i, err)
			}
			fitness[i] = f
			evaluations++
		}
		return nil
	}

	keep := cfg.keepCount()
	mutated := cfg.mutatedGenes()
	history := make([]float64, 0, cfg.Generations+1)

	gen := 0
	stopped := StopGenerations
	for {
		if err := evaluate(popA); err != nil {
			return Result{}, err
		}
		bestIdx := rankOrder(fitness)[0]
		history = append(history, fitness[bestIdx])

		log.Debug("поколение ГА",
			"generation", gen,
			"best_fitness", fitness[bestIdx],
		)

		if hasReach && fitness[bestIdx] >= reach {
			stopped = StopReach
			break
		}
		if gen >= cfg.Generations {
			break
		}
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := newResult(popA[bestIdx], fitness[bestIdx], bestIdx, gen, evaluations, StopContext, history)
			res.Duration = time.Since(start)
			return res, err
		}

		parents := selectParents(cfg.ParentSelection, fitness, cfg.ParentsMating, cfg.TournamentSize, s.Rng)

		write := 0

		// Сохранение лучших родителей без изменений
		if keep > 0 {
			best := parents
			if keep < len(parents) {
				best = bestOf(parents, fitness, keep)
			}
			for _, p := range best {
				copy(popB[write], popA[p])
				write++
			}
		}

		// Потомки: родители берутся парами по кругу
		for k := 0; write < popSize; k++ {
			p1 := parents[k%len(parents)]
			p2 := parents[(k+1)%len(parents)]
			child := popB[write]
			crossover(cfg.Crossover, popA[p1], popA[p2], child, s.Rng)
			mutate(cfg.Mutation, child, mutated, cfg.MutationLow, cfg.MutationHigh, s.Rng)
			write++
		}

		// Смена поколений
		popA, popB = popB, popA
		gen++
	}

	bestIdx := rankOrder(fitness)[0]
	res := newResult(popA[bestIdx], fitness[bestIdx], bestIdx, gen, evaluations, stopped, history)
	res.Duration = time.Since(start)

	log.Debug("ГА завершён",
		"stopped", stopped,
		"generations", gen,
		"best_fitness", res.Fitness,
	)
	return res, nil
}

// bestOf возвращает k лучших индексов из idxs по fitness.
func bestOf(idxs []int, fitness []float64, k int) []int {
	sub := make([]float64, len(idxs))
	for i, idx := range idxs {
		sub[i] = fitness[idx]
	}
	order := rankOrder(sub)[:k]
	out := make([]int, k)
	for i, o := range order {
		out[i] = idxs[o]
	}
	return out
}
