// Package tabu реализует обобщённый табу-поиск (минимизация).
//
// Движок не знает структуры решения: он получает функцию оценки,
// функцию генерации соседей и функцию ключа для табу-списка.
// Всё состояние поиска живёт внутри одного вызова Run,
// поэтому независимые запуски можно выполнять параллельно.
package tabu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Evaluator возвращает оценку решения. Меньше — лучше.
// Для одного и того же решения должна возвращать одно и то же значение.
type Evaluator[S any] func(S) (float64, error)

// Neighborhood возвращает соседей решения. Пустой срез допустим.
type Neighborhood[S any] func(S) ([]S, error)

// KeyFunc отображает решение в ключ табу-списка.
type KeyFunc[S any, K comparable] func(S) K

// StopReason — причина остановки поиска.
type StopReason string

const (
	StopThreshold     StopReason = "threshold"
	StopNoNeighbors   StopReason = "no_neighbors"
	StopAllTabu       StopReason = "all_tabu"
	StopMaxIterations StopReason = "max_iterations"
	StopContext       StopReason = "context"
)

// Result — итог запуска.
// Score — последняя оценка текущего решения, а не лучшего.
type Result[S any] struct {
	Best        S
	BestScore   float64
	Score       float64
	Iterations  int
	Evaluations int
	Reason      StopReason
}

// Engine — движок табу-поиска.
type Engine[S any, K comparable] struct {
	Cfg       Config
	Evaluate  Evaluator[S]
	Neighbors Neighborhood[S]
	Key       KeyFunc[S, K]

	// Logger может быть nil.
	Logger *slog.Logger
}

// New возвращает движок с проверенной конфигурацией.
func New[S any, K comparable](
	cfg Config,
	evaluate Evaluator[S],
	neighbors Neighborhood[S],
	key KeyFunc[S, K],
) (*Engine[S, K], error) {
	e := &Engine[S, K]{
		Cfg:       cfg,
		Evaluate:  evaluate,
		Neighbors: neighbors,
		Key:       key,
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Run запускает поиск для сравнимых решений, ключом служит само решение.
func Run[S comparable](
	ctx context.Context,
	initial S,
	evaluate Evaluator[S],
	neighbors Neighborhood[S],
	cfg Config,
) (Result[S], error) {
	e, err := New(cfg, evaluate, neighbors, func(s S) S { return s })
	if err != nil {
		return Result[S]{}, err
	}
	return e.Run(ctx, initial)
}

func (e *Engine[S, K]) validate() error {
	if err := e.Cfg.Validate(); err != nil {
		return err
	}
	switch {
	case e.Evaluate == nil:
		return fmt.Errorf("%w: функция оценки не задана (nil)", ErrInvalidConfig)
	case e.Neighbors == nil:
		return fmt.Errorf("%w: функция генерации соседей не задана (nil)", ErrInvalidConfig)
	case e.Key == nil:
		return fmt.Errorf("%w: функция ключа не задана (nil)", ErrInvalidConfig)
	}
	return nil
}

// Run — основной цикл поиска, начиная с initial.
func (e *Engine[S, K]) Run(ctx context.Context, initial S) (Result[S], error) {
	if err := e.validate(); err != nil {
		return Result[S]{}, err
	}
	log := e.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	currScore, err := e.Evaluate(initial)
	if err != nil {
		return Result[S]{}, fmt.Errorf("оценка начального решения: %w", err)
	}
	evals := 1

	// Текущее и глобально лучшее решения
	curr, best := initial, initial
	bestScore := currScore

	tabu := newMemory[K](e.Cfg.TabuTenure)
	iter := 0

	result := func(reason StopReason) Result[S] {
		return Result[S]{
			Best:        best,
			BestScore:   bestScore,
			Score:       currScore,
			Iterations:  iter,
			Evaluations: evals,
			Reason:      reason,
		}
	}
	stop := func(reason StopReason) (Result[S], error) {
		log.Debug("табу-поиск завершён",
			"reason", reason,
			"iterations", iter,
			"best_score", bestScore,
			"score", currScore,
		)
		return result(reason), nil
	}

	for {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return result(StopContext), err
		}

		// Критерии остановки проверяются до генерации соседей
		if bestScore < e.Cfg.AcceptableScore {
			return stop(StopThreshold)
		}
		if iter >= e.Cfg.MaxIterations {
			return stop(StopMaxIterations)
		}

		neighbors, err := e.Neighbors(curr)
		if err != nil {
			return Result[S]{}, fmt.Errorf("генерация соседей (итерация %d): %w", iter, err)
		}
		if len(neighbors) == 0 {
			return stop(StopNoNeighbors)
		}

		// Лучший допустимый сосед; при равенстве побеждает первый
		var (
			chosen      S
			chosenKey   K
			chosenScore float64
			found       bool
		)
		for _, n := range neighbors {
			key := e.Key(n)
			isTabu := tabu.contains(key)
			if isTabu && !e.Cfg.Aspiration {
				continue
			}

			score, err := e.Evaluate(n)
			if err != nil {
				return Result[S]{}, fmt.Errorf("оценка соседа (итерация %d): %w", iter, err)
			}
			evals++

			// Критерий аспирации: табуированный ход допустим,
			// только если он улучшает глобальный рекорд
			if isTabu && !(score < bestScore) {
				continue
			}

			if !found || score < chosenScore {
				chosen, chosenKey, chosenScore = n, key, score
				found = true
			}
		}

		// Все соседи табуированы
		if !found {
			return stop(StopAllTabu)
		}

		if bestScore-chosenScore >= 0 {
			best, bestScore = chosen, chosenScore
		}
		curr, currScore = chosen, chosenScore

		tabu.age()
		tabu.add(chosenKey, e.Cfg.TabuTenure)

		iter++
		log.Debug("итерация табу-поиска",
			"iter", iter,
			"score", currScore,
			"best_score", bestScore,
			"tabu", tabu.len(),
		)
	}
}

// IsInvalidConfig сообщает, вызвана ли ошибка некорректной конфигурацией.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
