package main

import (
	"log/slog"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"metaheuristics/internal/bench"
	"metaheuristics/internal/config"
	"metaheuristics/internal/ga"
	"metaheuristics/internal/logging"
	"metaheuristics/internal/opt"
	"metaheuristics/internal/ts"
)

// app — общее состояние команд: путь к конфигурации и логгер.
type app struct {
	cfgPath   string
	logLevel  string
	logFormat string

	log *slog.Logger
}

func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "bench",
		Short:         "Табу-поиск и генетический алгоритм для задачи flow-shop",
		Long:          `Бенчмарк метаэвристик (TS, GA) на случайных экземплярах перестановочной задачи flow-shop.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "путь к YAML-файлу конфигурации")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "уровень журнала: debug | info | warn | error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "формат журнала: text | json")

	rootCmd.AddCommand(
		NewRunCmd(a),
		NewSolveCmd(a),
		NewDemoCmd(a),
	)
	return rootCmd
}

// load читает конфигурацию, применяет глобальные флаги и настраивает журнал.
func (a *app) load() (*config.Config, error) {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return nil, err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	a.log, err = logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Фабрики

func newGAFactory(cfg ga.Config, log *slog.Logger) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		solver, err := ga.NewFlowShop(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		solver.Logger = log
		return solver, nil
	}
}

func newTSFactory(cfg ts.Config, log *slog.Logger) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		solver, err := ts.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		solver.Logger = log
		return solver, nil
	}
}

func algorithms(cfg *config.Config, log *slog.Logger) map[string]bench.Algorithm {
	return map[string]bench.Algorithm{
		"GA": {Name: "GA", Factory: newGAFactory(cfg.GA, log)},
		"TS": {Name: "TS", Factory: newTSFactory(cfg.TS, log)},
	}
}
