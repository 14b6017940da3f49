package flowshop

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Makespan(t *testing.T) {
	// 3 работы × 2 машины
	inst, err := NewInstance(3, 2, []int{
		3, 2,
		1, 4,
		2, 1,
	})
	require.NoError(t, err)

	eval, err := NewEvaluator(inst)
	require.NoError(t, err)

	ms, err := eval.Makespan([]int{0, 1, 2})
	require.NoError(t, err)
	// M1: 3,4,6; M2: 5,9,10
	assert.Equal(t, 10, ms)

	ms, err = eval.Makespan([]int{1, 0, 2})
	require.NoError(t, err)
	// M1: 1,4,6; M2: 5,7,8
	assert.Equal(t, 8, ms)

	score, err := eval.Score([]int{1, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, 8.0, score)
	assert.Equal(t, 3, eval.Calls())
}

func TestEvaluator_RejectsInvalidPermutation(t *testing.T) {
	inst, err := NewInstance(2, 1, []int{1, 1})
	require.NoError(t, err)
	eval, err := NewEvaluator(inst)
	require.NoError(t, err)

	_, err = eval.Makespan([]int{0, 0})
	assert.Error(t, err)
	_, err = eval.Makespan([]int{0})
	assert.Error(t, err)
	_, err = eval.Makespan([]int{0, 2})
	assert.Error(t, err)
}

func TestInstance_Validate(t *testing.T) {
	_, err := NewInstance(0, 1, nil)
	assert.Error(t, err)
	_, err = NewInstance(1, 2, []int{1})
	assert.Error(t, err)
	_, err = NewInstance(1, 1, []int{-1})
	assert.Error(t, err)

	var nilInst *Instance
	assert.Error(t, nilInst.Validate())
}

func TestRandomInstance(t *testing.T) {
	inst, err := RandomInstance(5, 3, 1, 9, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Len(t, inst.ProcTimes, 15)
	for _, v := range inst.ProcTimes {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 9)
	}

	_, err = RandomInstance(5, 3, 1, 9, nil)
	assert.Error(t, err)
	_, err = RandomInstance(5, 3, 9, 1, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestInstance_SaveLoadFile(t *testing.T) {
	inst, err := RandomInstance(4, 3, 1, 20, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "inst.yaml")
	require.NoError(t, SaveInstance(path, inst))

	loaded, err := LoadInstance(path)
	require.NoError(t, err)
	assert.Equal(t, inst, loaded)
}

func TestLoadInstance_RejectsRaggedMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte("jobs: 2\nmachines: 2\ntimes:\n  - [1, 2]\n  - [3]\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := LoadInstance(path)
	assert.Error(t, err)

	_, err = LoadInstance(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInsertAndSwap(t *testing.T) {
	p := []int{0, 1, 2, 3, 4}
	Insert(p, 1, 3)
	assert.Equal(t, []int{0, 2, 3, 1, 4}, p)
	Insert(p, 3, 0)
	assert.Equal(t, []int{1, 0, 2, 3, 4}, p)
	Swap(p, 0, 4)
	assert.Equal(t, []int{4, 0, 2, 3, 1}, p)
	require.NoError(t, ValidatePermutation(p, 5))
}

func TestDecodeRandomKeys(t *testing.T) {
	perm := make([]int, 4)
	DecodeRandomKeys([]int{30, 10, 30, 5}, perm)
	assert.Equal(t, []int{3, 1, 0, 2}, perm)
}

func TestRandomPermutationAndKey(t *testing.T) {
	p := RandomPermutation(6, rand.New(rand.NewSource(3)))
	require.NoError(t, ValidatePermutation(p, 6))
	assert.Equal(t, "2,0,1", Key([]int{2, 0, 1}))
	assert.NotEqual(t, Key([]int{1, 12}), Key([]int{11, 2}))
}
