package flowshop

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("длина перестановки должна быть %d (получено %d)", n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("perm[%d]=%d вне диапазона [0,%d)", i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("работа %d повторяется в перестановке", v)
		}
		seen[v] = true
	}
	return nil
}

// Identity заполняет срез значениями [0, 1, ..., n-1].
func Identity(p []int) {
	for i := range p {
		p[i] = i
	}
}

// Shuffle выполняет случайную перестановку элементов (Фишер–Йетс).
func Shuffle(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}

// RandomPermutation возвращает случайную перестановку длины n.
func RandomPermutation(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	Identity(p)
	Shuffle(p, rng)
	return p
}

// Swap — обмен элементов в позициях i и j.
func Swap(p []int, i, j int) {
	p[i], p[j] = p[j], p[i]
}

// Insert переносит элемент из позиции from в позицию to.
func Insert(p []int, from, to int) {
	if from == to {
		return
	}
	val := p[from]
	if from < to {
		copy(p[from:to], p[from+1:to+1])
		p[to] = val
		return
	}
	copy(p[to+1:from+1], p[to:from])
	p[to] = val
}

// DecodeRandomKeys строит перестановку из вектора ключей:
// работы упорядочиваются по возрастанию ключа, при равенстве — по номеру.
func DecodeRandomKeys(keys []int, perm []int) {
	Identity(perm)
	sort.SliceStable(perm, func(a, b int) bool {
		return keys[perm[a]] < keys[perm[b]]
	})
}

// Key кодирует перестановку в строку, пригодную как ключ map.
func Key(p []int) string {
	var b strings.Builder
	b.Grow(len(p) * 3)
	for i, v := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
