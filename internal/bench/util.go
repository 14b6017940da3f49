package bench

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
)

// ParsePairs разбирает список конфигураций вида "20x5,50x10".
// Сид экземпляра фиксирован для позиции и размеров конфигурации.
func ParsePairs(s string, baseInstanceSeed int64) ([]Case, error) {
	parts := SplitCSV(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("не задано ни одной конфигурации")
	}
	cases := make([]Case, 0, len(parts))

	for i, p := range parts {
		jm := strings.Split(strings.ToLower(p), "x")
		if len(jm) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 50x10", p)
		}
		jobs, err := atoiStrict(jm[0])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества работ: %w", p, err)
		}
		machines, err := atoiStrict(jm[1])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества машин: %w", p, err)
		}
		if jobs <= 0 || machines <= 0 {
			return nil, fmt.Errorf("пара %q: количество работ и машин должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)

		cases = append(cases, Case{
			Jobs:         jobs,
			Machines:     machines,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

// SplitCSV делит строку по запятым, отбрасывая пустые элементы.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
