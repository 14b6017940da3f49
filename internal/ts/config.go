package ts

import "fmt"

// Neighborhood определяет тип окрестности.
type Neighborhood string

const (
	NeighborhoodInsert Neighborhood = "insert"
	NeighborhoodSwap   Neighborhood = "swap"
)

type Config struct {
	Iterations       int `yaml:"iterations"`
	IterationsPerJob int `yaml:"iterations_per_job"`

	TabuTenure int `yaml:"tenure"`

	NeighborsPerIter int `yaml:"neighbors"`

	Neighborhood Neighborhood `yaml:"neighborhood"`

	// Поиск останавливается при makespan <= TargetMakespan; 0 — без цели.
	TargetMakespan int `yaml:"target_makespan"`

	Aspiration bool `yaml:"aspiration"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:       0,
		IterationsPerJob: 250,

		TabuTenure: 7,

		NeighborsPerIter: 90,
		Neighborhood:     NeighborhoodInsert,

		TargetMakespan: 0,
		Aspiration:     false,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerJob <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerJob > 0",
		)
	}
	if c.TabuTenure <= 0 {
		return fmt.Errorf(
			"TabuTenure должно быть > 0 (получено %d)",
			c.TabuTenure,
		)
	}
	if c.NeighborsPerIter <= 0 {
		return fmt.Errorf(
			"NeighborsPerIter должно быть > 0 (получено %d)",
			c.NeighborsPerIter,
		)
	}
	if c.TargetMakespan < 0 {
		return fmt.Errorf(
			"TargetMakespan должно быть >= 0 (получено %d)",
			c.TargetMakespan,
		)
	}
	switch c.Neighborhood {
	case NeighborhoodInsert, NeighborhoodSwap:
		// ok
	default:
		return fmt.Errorf(
			"неизвестный тип окрестности %q",
			c.Neighborhood,
		)
	}
	return nil
}

// maxIterations возвращает итоговое число итераций для n работ.
func (c Config) maxIterations(n int) int {
	if c.Iterations > 0 {
		return c.Iterations
	}
	return c.IterationsPerJob * n
}
