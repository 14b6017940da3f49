// Package config загружает параметры бенчмарка из YAML-файла.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"metaheuristics/internal/bench"
	"metaheuristics/internal/ga"
	"metaheuristics/internal/logging"
	"metaheuristics/internal/ts"
)

// Algorithms — поддерживаемые алгоритмы.
var Algorithms = []string{"GA", "TS"}

type Config struct {
	Out   string `yaml:"out"`
	Pairs string `yaml:"pairs"`
	Algos string `yaml:"algos"`

	Runs          int           `yaml:"runs"`
	Seed          int64         `yaml:"seed"`
	InstanceSeed  int64         `yaml:"instance_seed"`
	PerRunTimeout time.Duration `yaml:"per_run_timeout"`
	Parallel      int           `yaml:"parallel"`

	MinTime int `yaml:"min_time"`
	MaxTime int `yaml:"max_time"`

	Log logging.Config `yaml:"log"`
	GA  ga.Config      `yaml:"ga"`
	TS  ts.Config      `yaml:"ts"`
}

func Default() *Config {
	return &Config{
		Out:          "artifacts/results.csv",
		Pairs:        "20x5,50x10,100x20",
		Algos:        "GA,TS",
		Runs:         30,
		Seed:         1000,
		InstanceSeed: 777,
		Parallel:     1,
		MinTime:      1,
		MaxTime:      99,
		Log:          logging.DefaultConfig(),
		GA:           ga.FlowShopDefaultConfig(),
		TS:           ts.DefaultConfig(),
	}
}

// Load читает файл поверх значений по умолчанию.
// Пустой путь означает значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}
	return cfg, nil
}

// Save записывает конфигурацию в YAML-файл.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("сериализация конфигурации: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("запись конфигурации: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Runs <= 0 {
		return fmt.Errorf("количество запусков должно быть > 0 (получено %d)", c.Runs)
	}
	if c.Parallel < 0 {
		return fmt.Errorf("parallel должно быть >= 0 (получено %d)", c.Parallel)
	}
	if c.PerRunTimeout < 0 {
		return fmt.Errorf("per_run_timeout должно быть >= 0 (получено %s)", c.PerRunTimeout)
	}
	if c.MinTime < 0 || c.MaxTime < c.MinTime {
		return fmt.Errorf("некорректные границы длительностей [%d, %d]", c.MinTime, c.MaxTime)
	}
	if _, err := bench.ParsePairs(c.Pairs, c.InstanceSeed); err != nil {
		return err
	}
	if _, err := c.SelectedAlgos(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	gaProbe := c.GA
	gaProbe.Genes = max(gaProbe.Genes, 1)
	if err := gaProbe.Validate(); err != nil {
		return fmt.Errorf("конфликт в конфигурации генетического алгоритма: %w", err)
	}
	if err := c.TS.Validate(); err != nil {
		return fmt.Errorf("конфликт в конфигурации табу-поиска: %w", err)
	}
	return nil
}

// SelectedAlgos возвращает список алгоритмов из поля Algos.
func (c *Config) SelectedAlgos() ([]string, error) {
	names := bench.SplitCSV(c.Algos)
	if len(names) == 0 {
		return nil, fmt.Errorf("не выбран ни один алгоритм; доступные: %v", Algorithms)
	}
	for _, n := range names {
		if !slices.Contains(Algorithms, n) {
			return nil, fmt.Errorf("алгоритм не предоставлен в программе %q; доступные: %v", n, Algorithms)
		}
	}
	return names, nil
}
