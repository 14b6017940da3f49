// Package opt задаёт общий контракт солверов flow-shop.
package opt

import (
	"context"
	"time"

	"metaheuristics/internal/flowshop"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *flowshop.Instance) (Result, error)
}

type Result struct {
	Permutation []int
	Makespan    int
	Evaluations int
	Iterations  int
	// Причина остановки (например, "max_iterations", "reach", "context").
	Stopped  string
	Duration time.Duration
	Meta     map[string]any
}
