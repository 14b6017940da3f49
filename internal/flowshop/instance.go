// Package flowshop описывает перестановочную задачу flow-shop:
// экземпляры, вычисление makespan и операции над перестановками.
package flowshop

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

type Instance struct {
	Jobs     int
	Machines int
	// ProcTimes хранится построчно: длина Jobs*Machines.
	ProcTimes []int
}

// instanceFile — представление экземпляра в YAML-файле.
type instanceFile struct {
	Jobs     int     `yaml:"jobs"`
	Machines int     `yaml:"machines"`
	Times    [][]int `yaml:"times"`
}

func NewInstance(jobs, machines int, procTimes []int) (*Instance, error) {
	inst := &Instance{Jobs: jobs, Machines: machines, ProcTimes: procTimes}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("экземпляр задачи не задан (nil)")
	}
	if inst.Jobs <= 0 {
		return fmt.Errorf("количество работ должно быть > 0 (получено %d)", inst.Jobs)
	}
	if inst.Machines <= 0 {
		return fmt.Errorf("количество машин должно быть > 0 (получено %d)", inst.Machines)
	}
	if len(inst.ProcTimes) != inst.Jobs*inst.Machines {
		return fmt.Errorf(
			"длина ProcTimes должна быть jobs*machines=%d (получено %d)",
			inst.Jobs*inst.Machines, len(inst.ProcTimes),
		)
	}
	for i, v := range inst.ProcTimes {
		if v < 0 {
			return fmt.Errorf("ProcTimes[%d] должно быть >= 0 (получено %d)", i, v)
		}
	}
	return nil
}

// Time возвращает длительность работы job на машине machine.
func (inst *Instance) Time(job, machine int) int {
	return inst.ProcTimes[job*inst.Machines+machine]
}

// RandomInstance генерирует экземпляр с длительностями в [minTime, maxTime].
func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) (*Instance, error) {
	if rng == nil {
		return nil, errors.New("генератор случайных чисел не инициализирован (nil)")
	}
	if minTime < 0 || maxTime < minTime {
		return nil, fmt.Errorf("некорректные границы длительностей [%d, %d]", minTime, maxTime)
	}
	pt := make([]int, jobs*machines)
	span := maxTime - minTime + 1
	for i := range pt {
		pt[i] = minTime
		if span > 1 {
			pt[i] += rng.Intn(span)
		}
	}
	return NewInstance(jobs, machines, pt)
}

// LoadInstance читает экземпляр из YAML-файла.
func LoadInstance(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение экземпляра: %w", err)
	}

	var f instanceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("разбор экземпляра %s: %w", path, err)
	}

	if len(f.Times) != f.Jobs {
		return nil, fmt.Errorf("times: ожидалось %d строк (получено %d)", f.Jobs, len(f.Times))
	}
	pt := make([]int, 0, f.Jobs*f.Machines)
	for j, row := range f.Times {
		if len(row) != f.Machines {
			return nil, fmt.Errorf("times[%d]: ожидалось %d значений (получено %d)", j, f.Machines, len(row))
		}
		pt = append(pt, row...)
	}
	return NewInstance(f.Jobs, f.Machines, pt)
}

// SaveInstance записывает экземпляр в YAML-файл.
func SaveInstance(path string, inst *Instance) error {
	if err := inst.Validate(); err != nil {
		return err
	}
	f := instanceFile{
		Jobs:     inst.Jobs,
		Machines: inst.Machines,
		Times:    make([][]int, inst.Jobs),
	}
	for j := range f.Times {
		f.Times[j] = inst.ProcTimes[j*inst.Machines : (j+1)*inst.Machines]
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("сериализация экземпляра: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("запись экземпляра: %w", err)
	}
	return nil
}
