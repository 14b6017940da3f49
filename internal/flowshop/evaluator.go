package flowshop

import "errors"

// Evaluator вычисляет makespan перестановки.
// Хранит рабочий буфер, поэтому не безопасен для параллельного использования.
type Evaluator struct {
	inst              *Instance
	machineCompletion []int
	calls             int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst, machineCompletion: make([]int, inst.Machines)}, nil
}

// Makespan — время завершения последней работы на последней машине.
func (e *Evaluator) Makespan(perm []int) (int, error) {
	if e == nil || e.inst == nil {
		return 0, errors.New("оценщик не инициализирован (nil)")
	}
	if err := ValidatePermutation(perm, e.inst.Jobs); err != nil {
		return 0, err
	}
	e.calls++

	for m := range e.machineCompletion {
		e.machineCompletion[m] = 0
	}

	for _, job := range perm {
		e.machineCompletion[0] += e.inst.Time(job, 0)
		for m := 1; m < e.inst.Machines; m++ {
			ready := max(e.machineCompletion[m-1], e.machineCompletion[m])
			e.machineCompletion[m] = ready + e.inst.Time(job, m)
		}
	}
	return e.machineCompletion[e.inst.Machines-1], nil
}

// Score — makespan как оценка для табу-поиска.
func (e *Evaluator) Score(perm []int) (float64, error) {
	ms, err := e.Makespan(perm)
	return float64(ms), err
}

// Calls — количество вычислений makespan.
func (e *Evaluator) Calls() int { return e.calls }
