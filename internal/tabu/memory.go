package tabu

// memory — табу-список: ключ решения → оставшийся срок запрета.
// Между итерациями все счётчики >= 1.
type memory[K comparable] struct {
	m map[K]int
}

func newMemory[K comparable](tenure int) *memory[K] {
	return &memory[K]{m: make(map[K]int, tenure+1)}
}

// contains проверяет, является ли решение табуированным.
func (t *memory[K]) contains(k K) bool {
	_, ok := t.m[k]
	return ok
}

// age уменьшает срок всех записей на 1 и удаляет истёкшие.
func (t *memory[K]) age() {
	for k, left := range t.m {
		left--
		if left <= 0 {
			delete(t.m, k)
			continue
		}
		t.m[k] = left
	}
}

// add добавляет решение с полным сроком, перезаписывая прежнюю запись.
func (t *memory[K]) add(k K, tenure int) {
	t.m[k] = tenure
}

func (t *memory[K]) len() int { return len(t.m) }
