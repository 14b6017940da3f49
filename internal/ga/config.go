package ga

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig возвращается при некорректных параметрах алгоритма.
var ErrInvalidConfig = errors.New("некорректная конфигурация генетического алгоритма")

// Selection — оператор отбора родителей.
type Selection string

const (
	SelectionSteadyState Selection = "sss"
	SelectionRoulette    Selection = "rws"
	SelectionUniversal   Selection = "sus"
	SelectionRank        Selection = "rank"
	SelectionRandom      Selection = "random"
	SelectionTournament  Selection = "tournament"
)

// Crossover — оператор скрещивания.
type Crossover string

const (
	CrossoverSinglePoint Crossover = "single_point"
	CrossoverTwoPoints   Crossover = "two_points"
	CrossoverUniform     Crossover = "uniform"
	CrossoverScattered   Crossover = "scattered"
)

// Mutation — оператор мутации.
type Mutation string

const (
	MutationRandom    Mutation = "random"
	MutationSwap      Mutation = "swap"
	MutationInversion Mutation = "inversion"
	MutationScramble  Mutation = "scramble"
)

type Config struct {
	Generations   int `yaml:"generations"`
	ParentsMating int `yaml:"parents_mating"`
	Population    int `yaml:"population"`
	Genes         int `yaml:"genes"`

	// Начальные значения генов выбираются из [InitLow, InitHigh].
	InitLow  int `yaml:"init_low"`
	InitHigh int `yaml:"init_high"`

	// Мутация random прибавляет к гену значение из [MutationLow, MutationHigh].
	MutationLow  int `yaml:"mutation_low"`
	MutationHigh int `yaml:"mutation_high"`

	ParentSelection Selection `yaml:"parent_selection"`
	TournamentSize  int       `yaml:"tournament_size"`

	// -1 — сохранить всех родителей, 0 — ни одного, k > 0 — k лучших.
	KeepParents int `yaml:"keep_parents"`

	Crossover       Crossover `yaml:"crossover"`
	Mutation        Mutation  `yaml:"mutation"`
	MutationPercent float64   `yaml:"mutation_percent"`

	// Остановка при fitness >= 1/AcceptableScore; 0 — без досрочной остановки.
	AcceptableScore float64 `yaml:"acceptable_score"`

	// Необязательная начальная популяция; задаёт Population и Genes.
	InitialPopulation [][]int `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		Generations:     100,
		ParentsMating:   4,
		Population:      8,
		Genes:           2,
		InitLow:         1,
		InitHigh:        20,
		MutationLow:     1,
		MutationHigh:    20,
		ParentSelection: SelectionSteadyState,
		TournamentSize:  3,
		KeepParents:     -1,
		Crossover:       CrossoverSinglePoint,
		Mutation:        MutationRandom,
		MutationPercent: 50,
		AcceptableScore: 0.3,
	}
}

// withInitialPopulation подставляет размеры из начальной популяции.
func (c Config) withInitialPopulation() Config {
	if len(c.InitialPopulation) > 0 {
		c.Population = len(c.InitialPopulation)
		c.Genes = len(c.InitialPopulation[0])
	}
	return c
}

func (c Config) Validate() error {
	c = c.withInitialPopulation()

	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Generations <= 0 {
		return invalid("количество поколений должно быть > 0 (получено %d)", c.Generations)
	}
	if c.Population <= 1 {
		return invalid("размер популяции должен быть > 1 (получено %d)", c.Population)
	}
	if c.Genes <= 0 {
		return invalid("количество генов должно быть > 0 (получено %d)", c.Genes)
	}
	for i, row := range c.InitialPopulation {
		if len(row) != c.Genes {
			return invalid("особь %d начальной популяции имеет %d генов (ожидалось %d)", i, len(row), c.Genes)
		}
	}
	if c.ParentsMating <= 0 || c.ParentsMating > c.Population {
		return invalid("число родителей должно быть в диапазоне [1, population] (получено %d)", c.ParentsMating)
	}
	if c.KeepParents < -1 || c.KeepParents > c.ParentsMating {
		return invalid("keep_parents должно быть в диапазоне [-1, parents_mating] (получено %d)", c.KeepParents)
	}
	if c.InitLow > c.InitHigh {
		return invalid("init_low должно быть <= init_high (получено %d > %d)", c.InitLow, c.InitHigh)
	}
	if c.MutationLow > c.MutationHigh {
		return invalid("mutation_low должно быть <= mutation_high (получено %d > %d)", c.MutationLow, c.MutationHigh)
	}
	if c.MutationPercent < 0 || c.MutationPercent > 100 {
		return invalid("процент мутирующих генов должен быть в диапазоне [0,100] (получено %f)", c.MutationPercent)
	}
	if c.AcceptableScore < 0 {
		return invalid("acceptable_score должно быть >= 0 (получено %f)", c.AcceptableScore)
	}

	switch c.ParentSelection {
	case SelectionSteadyState, SelectionRoulette, SelectionUniversal, SelectionRank, SelectionRandom:
		// ok
	case SelectionTournament:
		if c.TournamentSize <= 0 {
			return invalid("размер турнира должен быть > 0 (получено %d)", c.TournamentSize)
		}
	default:
		return invalid("неизвестный оператор отбора %q", c.ParentSelection)
	}
	switch c.Crossover {
	case CrossoverSinglePoint, CrossoverTwoPoints, CrossoverUniform, CrossoverScattered:
		// ok
	default:
		return invalid("неизвестный оператор скрещивания %q", c.Crossover)
	}
	switch c.Mutation {
	case MutationRandom, MutationSwap, MutationInversion, MutationScramble:
		// ok
	default:
		return invalid("неизвестный оператор мутации %q", c.Mutation)
	}
	return nil
}

// keepCount — количество родителей, переходящих в следующее поколение.
func (c Config) keepCount() int {
	if c.KeepParents < 0 {
		return c.ParentsMating
	}
	return c.KeepParents
}

// mutatedGenes — количество генов, изменяемых у одной особи.
func (c Config) mutatedGenes() int {
	if c.MutationPercent == 0 {
		return 0
	}
	k := int(float64(c.Genes)*c.MutationPercent/100 + 0.5)
	return min(max(k, 1), c.Genes)
}
