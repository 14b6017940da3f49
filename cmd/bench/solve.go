package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"metaheuristics/internal/flowshop"
)

func NewSolveCmd(a *app) *cobra.Command {
	var (
		algo         string
		instancePath string
		savePath     string
		jobs         int
		machines     int
		instanceSeed int64
		seed         int64
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Решить один экземпляр выбранным алгоритмом",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			cfg.Algos = algo
			if err := cfg.Validate(); err != nil {
				return err
			}
			names, err := cfg.SelectedAlgos()
			if err != nil {
				return err
			}
			if len(names) != 1 {
				return fmt.Errorf("нужен ровно один алгоритм, получено %d: %v", len(names), names)
			}
			name := names[0]
			algorithm, ok := algorithms(cfg, a.log)[name]
			if !ok {
				return fmt.Errorf("неизвестный алгоритм %q", name)
			}

			var inst *flowshop.Instance
			if instancePath != "" {
				inst, err = flowshop.LoadInstance(instancePath)
			} else {
				inst, err = flowshop.RandomInstance(jobs, machines, cfg.MinTime, cfg.MaxTime, rand.New(rand.NewSource(instanceSeed)))
			}
			if err != nil {
				return err
			}
			if savePath != "" {
				if err := flowshop.SaveInstance(savePath, inst); err != nil {
					return err
				}
			}

			a.log.Info("решение экземпляра",
				"algo", name,
				"jobs", inst.Jobs,
				"machines", inst.Machines,
				"seed", seed,
			)

			solver, err := algorithm.Factory(seed)
			if err != nil {
				return err
			}
			res, err := solver.Solve(cmd.Context(), inst)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Алгоритм: %s\n", name)
			fmt.Fprintf(out, "Makespan: %d\n", res.Makespan)
			fmt.Fprintf(out, "Перестановка: %v\n", res.Permutation)
			fmt.Fprintf(out, "Итераций: %d, вычислений: %d, остановка: %s, время: %s\n",
				res.Iterations, res.Evaluations, res.Stopped, res.Duration)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&algo, "algo", "TS", "алгоритм: GA | TS")
	fl.StringVar(&instancePath, "instance", "", "YAML-файл экземпляра (если не задан — случайный экземпляр)")
	fl.StringVar(&savePath, "save-instance", "", "сохранить экземпляр в YAML-файл")
	fl.IntVar(&jobs, "jobs", 20, "количество работ случайного экземпляра")
	fl.IntVar(&machines, "machines", 5, "количество машин случайного экземпляра")
	fl.Int64Var(&instanceSeed, "instance_seed", 777, "сид генерации случайного экземпляра")
	fl.Int64Var(&seed, "seed", 1000, "сид алгоритма")

	return cmd
}
