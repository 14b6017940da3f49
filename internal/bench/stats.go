package bench

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type IntStats struct {
	N    int
	Best int
	Mean float64
	Std  float64
}

// CalcIntStats — минимум, среднее и выборочное стандартное отклонение.
func CalcIntStats(values []int) IntStats {
	s := IntStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	fs := CalcFloatStats(xs)

	s.Best = int(fs.Best)
	s.Mean = fs.Mean
	s.Std = fs.Std
	return s
}

type FloatStats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	s.Best = floats.Min(values)
	mean, std := stat.MeanStdDev(values, nil)
	s.Mean = mean
	// Для одного значения выборочная дисперсия не определена
	if s.N < 2 || math.IsNaN(std) {
		std = 0
	}
	s.Std = std
	return s
}
