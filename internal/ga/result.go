package ga

import "time"

// Stop — причина остановки алгоритма.
type Stop string

const (
	StopReach       Stop = "reach"
	StopGenerations Stop = "generations"
	StopContext     Stop = "context"
)

// Result — лучшая особь последней популяции.
type Result struct {
	Best []int
	// Fitness лучшей особи.
	Fitness float64
	// Индекс лучшей особи в последней популяции.
	Index       int
	Generations int
	Evaluations int
	Stopped     Stop
	// Лучшее значение fitness в каждом оценённом поколении.
	History  []float64
	Duration time.Duration
}

func newResult(best []int, fitness float64, index, gens, evals int, stopped Stop, history []float64) Result {
	bestCopy := make([]int, len(best))
	copy(bestCopy, best)
	return Result{
		Best:        bestCopy,
		Fitness:     fitness,
		Index:       index,
		Generations: gens,
		Evaluations: evals,
		Stopped:     stopped,
		History:     history,
	}
}
