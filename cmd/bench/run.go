package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"metaheuristics/internal/bench"
	"metaheuristics/internal/config"
	"metaheuristics/internal/ga"
	"metaheuristics/internal/ts"
)

// override переносит значение флага в конфигурацию, если флаг задан явно.
type override struct {
	flag  string
	apply func(dst, src *config.Config)
}

func applyOverrides(cmd *cobra.Command, dst, src *config.Config, list []override) {
	for _, o := range list {
		if cmd.Flags().Changed(o.flag) {
			o.apply(dst, src)
		}
	}
}

func NewRunCmd(a *app) *cobra.Command {
	// Флаги записываются в f; в итоговую конфигурацию попадают только заданные явно
	f := config.Default()
	var tsNeigh, gaSel, gaCx, gaMut, dumpPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Запустить серию экспериментов и сохранить результаты в CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			f.TS.Neighborhood = ts.Neighborhood(tsNeigh)
			f.GA.ParentSelection = ga.Selection(gaSel)
			f.GA.Crossover = ga.Crossover(gaCx)
			f.GA.Mutation = ga.Mutation(gaMut)
			applyOverrides(cmd, cfg, f, runOverrides)

			if err := cfg.Validate(); err != nil {
				return err
			}
			if dumpPath != "" {
				if err := config.Save(dumpPath, cfg); err != nil {
					return err
				}
				a.log.Info("конфигурация сохранена", "path", dumpPath)
				return nil
			}
			return runBench(cmd, a, cfg)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.Out, "out", f.Out, "путь к выходному CSV-файлу")
	fl.StringVar(&f.Pairs, "pairs", f.Pairs, "конфигурации: количество работ Х количество станков (через запятую)")
	fl.StringVar(&f.Algos, "algos", f.Algos, "список алгоритмов: GA, TS (через запятую)")
	fl.IntVar(&f.Runs, "runs", f.Runs, "количество запусков каждого алгоритма (с разными сидами)")
	fl.Int64Var(&f.Seed, "seed", f.Seed, "базовый сид для запусков алгоритмов")
	fl.Int64Var(&f.InstanceSeed, "instance_seed", f.InstanceSeed, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
	fl.DurationVar(&f.PerRunTimeout, "per_run_timeout", f.PerRunTimeout, "таймаут одного запуска; 0 — без ограничения")
	fl.IntVar(&f.Parallel, "parallel", f.Parallel, "количество одновременных запусков")
	fl.StringVar(&dumpPath, "dump-config", "", "сохранить итоговую конфигурацию в YAML-файл и выйти без запуска")

	// --- Табу-поиск ---
	fl.IntVar(&f.TS.IterationsPerJob, "ts_iter_per_job", f.TS.IterationsPerJob, "количество итераций на одну работу (используется, если ts_iter == 0)")
	fl.IntVar(&f.TS.Iterations, "ts_iter", f.TS.Iterations, "общее количество итераций (0 => ts_iter_per_job × nJobs)")
	fl.IntVar(&f.TS.TabuTenure, "ts_tenure", f.TS.TabuTenure, "срок запрета решения (в итерациях)")
	fl.IntVar(&f.TS.NeighborsPerIter, "ts_neighbors", f.TS.NeighborsPerIter, "количество рассматриваемых соседей на итерацию")
	fl.StringVar(&tsNeigh, "ts_neigh", string(f.TS.Neighborhood), "тип окрестности: insert | swap")
	fl.IntVar(&f.TS.TargetMakespan, "ts_target", f.TS.TargetMakespan, "целевой makespan для досрочной остановки (0 — без цели)")
	fl.BoolVar(&f.TS.Aspiration, "ts_aspiration", f.TS.Aspiration, "разрешать табуированные ходы, улучшающие рекорд")

	// --- Генетический алгоритм ---
	fl.IntVar(&f.GA.Population, "ga_pop", f.GA.Population, "размер популяции")
	fl.IntVar(&f.GA.Generations, "ga_gen", f.GA.Generations, "количество поколений")
	fl.IntVar(&f.GA.ParentsMating, "ga_parents", f.GA.ParentsMating, "количество родителей в поколении")
	fl.IntVar(&f.GA.KeepParents, "ga_keep", f.GA.KeepParents, "сохраняемые родители: -1 все, 0 ни одного, k лучших")
	fl.StringVar(&gaSel, "ga_selection", string(f.GA.ParentSelection), "отбор: sss | rws | sus | rank | random | tournament")
	fl.IntVar(&f.GA.TournamentSize, "ga_tour", f.GA.TournamentSize, "размер турнирной выборки")
	fl.StringVar(&gaCx, "ga_crossover", string(f.GA.Crossover), "скрещивание: single_point | two_points | uniform | scattered")
	fl.StringVar(&gaMut, "ga_mutation", string(f.GA.Mutation), "мутация: random | swap | inversion | scramble")
	fl.Float64Var(&f.GA.MutationPercent, "ga_mut_percent", f.GA.MutationPercent, "процент мутирующих генов")
	fl.Float64Var(&f.GA.AcceptableScore, "ga_target", f.GA.AcceptableScore, "целевой makespan для досрочной остановки (0 — без цели)")

	return cmd
}

var runOverrides = []override{
	{"out", func(d, s *config.Config) { d.Out = s.Out }},
	{"pairs", func(d, s *config.Config) { d.Pairs = s.Pairs }},
	{"algos", func(d, s *config.Config) { d.Algos = s.Algos }},
	{"runs", func(d, s *config.Config) { d.Runs = s.Runs }},
	{"seed", func(d, s *config.Config) { d.Seed = s.Seed }},
	{"instance_seed", func(d, s *config.Config) { d.InstanceSeed = s.InstanceSeed }},
	{"per_run_timeout", func(d, s *config.Config) { d.PerRunTimeout = s.PerRunTimeout }},
	{"parallel", func(d, s *config.Config) { d.Parallel = s.Parallel }},

	{"ts_iter_per_job", func(d, s *config.Config) { d.TS.IterationsPerJob = s.TS.IterationsPerJob }},
	{"ts_iter", func(d, s *config.Config) { d.TS.Iterations = s.TS.Iterations }},
	{"ts_tenure", func(d, s *config.Config) { d.TS.TabuTenure = s.TS.TabuTenure }},
	{"ts_neighbors", func(d, s *config.Config) { d.TS.NeighborsPerIter = s.TS.NeighborsPerIter }},
	{"ts_neigh", func(d, s *config.Config) { d.TS.Neighborhood = s.TS.Neighborhood }},
	{"ts_target", func(d, s *config.Config) { d.TS.TargetMakespan = s.TS.TargetMakespan }},
	{"ts_aspiration", func(d, s *config.Config) { d.TS.Aspiration = s.TS.Aspiration }},

	{"ga_pop", func(d, s *config.Config) { d.GA.Population = s.GA.Population }},
	{"ga_gen", func(d, s *config.Config) { d.GA.Generations = s.GA.Generations }},
	{"ga_parents", func(d, s *config.Config) { d.GA.ParentsMating = s.GA.ParentsMating }},
	{"ga_keep", func(d, s *config.Config) { d.GA.KeepParents = s.GA.KeepParents }},
	{"ga_selection", func(d, s *config.Config) { d.GA.ParentSelection = s.GA.ParentSelection }},
	{"ga_tour", func(d, s *config.Config) { d.GA.TournamentSize = s.GA.TournamentSize }},
	{"ga_crossover", func(d, s *config.Config) { d.GA.Crossover = s.GA.Crossover }},
	{"ga_mutation", func(d, s *config.Config) { d.GA.Mutation = s.GA.Mutation }},
	{"ga_mut_percent", func(d, s *config.Config) { d.GA.MutationPercent = s.GA.MutationPercent }},
	{"ga_target", func(d, s *config.Config) { d.GA.AcceptableScore = s.GA.AcceptableScore }},
}

func runBench(cmd *cobra.Command, a *app, cfg *config.Config) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cases, err := bench.ParsePairs(cfg.Pairs, cfg.InstanceSeed)
	if err != nil {
		return err
	}
	names, err := cfg.SelectedAlgos()
	if err != nil {
		return err
	}
	available := algorithms(cfg, a.log)

	runner := bench.Runner{
		Runs:          cfg.Runs,
		BaseSeed:      cfg.Seed,
		PerRunTimeout: cfg.PerRunTimeout,
		Parallel:      cfg.Parallel,
		MinTime:       cfg.MinTime,
		MaxTime:       cfg.MaxTime,
		RunID:         uuid.NewString(),
		Logger:        a.log,
	}
	a.log.Info("бенчмарк запущен",
		"run_id", runner.RunID,
		"pairs", cfg.Pairs,
		"algos", names,
		"runs", cfg.Runs,
		"parallel", cfg.Parallel,
	)

	var records []bench.Record
	for _, c := range cases {
		for _, name := range names {
			algo := available[name]
			a.log.Info("запущен алгоритм",
				"algo", algo.Name,
				"jobs", c.Jobs,
				"machines", c.Machines,
				"runs", runner.Runs,
			)

			rec, err := runner.RunCase(ctx, c, algo)
			if err != nil {
				return fmt.Errorf("%s %dx%d: %w", algo.Name, c.Jobs, c.Machines, err)
			}
			records = append(records, rec)

			fmt.Fprintf(out, "%s %dx%d: значение целевой функции: лучшее=%d среднее=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms стандартное отклонение=%.2fms\n",
				algo.Name, c.Jobs, c.Machines,
				rec.MakespanBest, rec.MakespanMean, rec.MakespanStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(cfg.Out, records); err != nil {
		return fmt.Errorf("ошибка при записи в CSV: %w", err)
	}
	a.log.Info("результаты сохранены", "path", cfg.Out, "run_id", runner.RunID)
	return nil
}
