package tabu

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig возвращается при некорректных параметрах поиска.
var ErrInvalidConfig = errors.New("некорректная конфигурация табу-поиска")

type Config struct {
	// Поиск останавливается, как только оценка лучшего решения < AcceptableScore.
	AcceptableScore float64

	// Количество итераций, в течение которых посещённое решение запрещено.
	TabuTenure int

	MaxIterations int

	// Aspiration разрешает табуированного соседа,
	// если он строго лучше глобально лучшего решения.
	Aspiration bool
}

func DefaultConfig() Config {
	return Config{
		AcceptableScore: math.Inf(-1),
		TabuTenure:      7,
		MaxIterations:   100,
		Aspiration:      false,
	}
}

func (c Config) Validate() error {
	if math.IsNaN(c.AcceptableScore) {
		return fmt.Errorf("%w: AcceptableScore не может быть NaN", ErrInvalidConfig)
	}
	if c.TabuTenure <= 0 {
		return fmt.Errorf(
			"%w: TabuTenure должно быть > 0 (получено %d)",
			ErrInvalidConfig, c.TabuTenure,
		)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf(
			"%w: MaxIterations должно быть > 0 (получено %d)",
			ErrInvalidConfig, c.MaxIterations,
		)
	}
	return nil
}
