package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"metaheuristics/internal/tabu"
)

// NewDemoCmd — табу-поиск на целых числах: минимизация |x - target|
// с ходами x-1 и x+1.
func NewDemoCmd(a *app) *cobra.Command {
	var (
		start     int
		target    int
		cfg       = tabu.DefaultConfig()
		noNeighbs bool
	)
	cfg.AcceptableScore = 0.5
	cfg.TabuTenure = 2
	cfg.MaxIterations = 50

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Табу-поиск минимума |x - target| на целых числах",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.load(); err != nil {
				return err
			}

			evaluate := func(x int) (float64, error) {
				return math.Abs(float64(x - target)), nil
			}
			neighbors := func(x int) ([]int, error) {
				if noNeighbs {
					return nil, nil
				}
				return []int{x - 1, x + 1}, nil
			}

			engine, err := tabu.New(cfg, evaluate, neighbors, func(x int) int { return x })
			if err != nil {
				return err
			}
			engine.Logger = a.log

			res, err := engine.Run(cmd.Context(), start)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "best=%d score=%g best_score=%g iterations=%d reason=%s\n",
				res.Best, res.Score, res.BestScore, res.Iterations, res.Reason)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&start, "start", 0, "начальное решение")
	fl.IntVar(&target, "target", 10, "точка минимума")
	fl.Float64Var(&cfg.AcceptableScore, "threshold", cfg.AcceptableScore, "остановка при оценке лучшего решения < threshold")
	fl.IntVar(&cfg.TabuTenure, "tenure", cfg.TabuTenure, "срок запрета решения (в итерациях)")
	fl.IntVar(&cfg.MaxIterations, "max_iter", cfg.MaxIterations, "максимальное количество итераций")
	fl.BoolVar(&cfg.Aspiration, "aspiration", cfg.Aspiration, "разрешать табуированные ходы, улучшающие рекорд")
	fl.BoolVar(&noNeighbs, "no_neighbors", false, "генератор соседей всегда возвращает пустой список")

	return cmd
}
