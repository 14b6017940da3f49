package ga

import (
	"math/rand"
	"sort"
)

// rankOrder возвращает индексы особей по убыванию fitness.
// При равенстве сохраняется исходный порядок.
func rankOrder(fitness []float64) []int {
	idxs := make([]int, len(fitness))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return fitness[idxs[a]] > fitness[idxs[b]]
	})
	return idxs
}

// selectParents возвращает индексы k родителей согласно оператору отбора.
func selectParents(sel Selection, fitness []float64, k, tournamentSize int, rng *rand.Rand) []int {
	switch sel {
	case SelectionRoulette:
		return rouletteSelect(shiftedWeights(fitness), k, rng)
	case SelectionUniversal:
		return universalSelect(shiftedWeights(fitness), k, rng)
	case SelectionRank:
		return rankSelect(fitness, k, rng)
	case SelectionRandom:
		out := make([]int, k)
		for i := range out {
			out[i] = rng.Intn(len(fitness))
		}
		return out
	case SelectionTournament:
		out := make([]int, k)
		for i := range out {
			out[i] = tournamentSelect(fitness, tournamentSize, rng)
		}
		return out
	default:
		// Steady-state: k лучших особей
		return rankOrder(fitness)[:k]
	}
}

// shiftedWeights сдвигает fitness так, чтобы все веса были положительными.
func shiftedWeights(fitness []float64) []float64 {
	lo := fitness[0]
	for _, f := range fitness {
		lo = min(lo, f)
	}
	w := make([]float64, len(fitness))
	for i, f := range fitness {
		w[i] = f
		if lo <= 0 {
			w[i] = f - lo + 1e-9
		}
	}
	return w
}

// rouletteSelect — отбор методом рулетки.
func rouletteSelect(weights []float64, k int, rng *rand.Rand) []int {
	cum := cumulative(weights)
	total := cum[len(cum)-1]
	out := make([]int, k)
	for i := range out {
		out[i] = pick(cum, rng.Float64()*total)
	}
	return out
}

// universalSelect — стохастический универсальный отбор:
// k равноотстоящих указателей с одним случайным смещением.
func universalSelect(weights []float64, k int, rng *rand.Rand) []int {
	cum := cumulative(weights)
	step := cum[len(cum)-1] / float64(k)
	offset := rng.Float64() * step
	out := make([]int, k)
	for i := range out {
		out[i] = pick(cum, offset+float64(i)*step)
	}
	return out
}

// rankSelect — рулетка с весами, пропорциональными рангу особи.
func rankSelect(fitness []float64, k int, rng *rand.Rand) []int {
	order := rankOrder(fitness)
	weights := make([]float64, len(fitness))
	for rank, idx := range order {
		weights[idx] = float64(len(order) - rank)
	}
	return rouletteSelect(weights, k, rng)
}

// tournamentSelect реализует турнирный отбор.
// Возвращается индекс особи с наибольшим значением fitness.
func tournamentSelect(fitness []float64, tournamentSize int, rng *rand.Rand) int {
	best := rng.Intn(len(fitness))
	for i := 1; i < tournamentSize; i++ {
		cand := rng.Intn(len(fitness))
		if fitness[cand] > fitness[best] {
			best = cand
		}
	}
	return best
}

func cumulative(weights []float64) []float64 {
	cum := make([]float64, len(weights))
	acc := 0.0
	for i, w := range weights {
		acc += w
		cum[i] = acc
	}
	return cum
}

// pick возвращает первый индекс, у которого накопленный вес > x.
func pick(cum []float64, x float64) int {
	i := sort.Search(len(cum), func(i int) bool { return cum[i] > x })
	if i == len(cum) {
		i = len(cum) - 1
	}
	return i
}

// crossover формирует потомка child из родителей p1 и p2.
func crossover(op Crossover, p1, p2, child []int, rng *rand.Rand) {
	n := len(p1)
	copy(child, p1)
	if n < 2 {
		return
	}

	switch op {
	case CrossoverTwoPoints:
		a := rng.Intn(n)
		b := rng.Intn(n)
		if a > b {
			a, b = b, a
		}
		copy(child[a:b+1], p2[a:b+1])
	case CrossoverUniform, CrossoverScattered:
		// Маска выбирается независимо для каждого гена
		for i := range child {
			if rng.Intn(2) == 1 {
				child[i] = p2[i]
			}
		}
	default:
		// Одна точка разреза в (0, n)
		cut := 1 + rng.Intn(n-1)
		copy(child[cut:], p2[cut:])
	}
}

// mutate изменяет genes генов особи p.
func mutate(op Mutation, p []int, genes, low, high int, rng *rand.Rand) {
	n := len(p)
	if genes <= 0 || n == 0 {
		return
	}

	switch op {
	case MutationSwap:
		mutateSwap(p, rng)
	case MutationInversion:
		a, b := segment(n, rng)
		for a < b {
			p[a], p[b] = p[b], p[a]
			a++
			b--
		}
	case MutationScramble:
		a, b := segment(n, rng)
		seg := p[a : b+1]
		rng.Shuffle(len(seg), func(i, j int) { seg[i], seg[j] = seg[j], seg[i] })
	default:
		// Случайная добавка к genes различным генам
		for _, i := range rng.Perm(n)[:genes] {
			p[i] += low + rng.Intn(high-low+1)
		}
	}
}

// mutateSwap реализует оператор мутации Swap.
func mutateSwap(p []int, rng *rand.Rand) {
	if len(p) < 2 {
		return
	}
	i := rng.Intn(len(p))
	j := rng.Intn(len(p) - 1)
	if j >= i {
		j++
	}
	p[i], p[j] = p[j], p[i]
}

// segment возвращает случайный отрезок [a, b] длины не меньше 2 (если n >= 2).
func segment(n int, rng *rand.Rand) (int, int) {
	if n < 2 {
		return 0, n - 1
	}
	a := rng.Intn(n - 1)
	b := a + 1 + rng.Intn(n-a-1)
	return a, b
}
