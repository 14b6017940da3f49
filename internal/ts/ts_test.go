package ts

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaheuristics/internal/flowshop"
	"metaheuristics/internal/tabu"
)

func testInstance(t *testing.T, jobs, machines int, seed int64) *flowshop.Instance {
	t.Helper()
	inst, err := flowshop.RandomInstance(jobs, machines, 1, 99, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return inst
}

func TestSolve_ReturnsValidPermutation(t *testing.T) {
	for _, nb := range []Neighborhood{NeighborhoodInsert, NeighborhoodSwap} {
		t.Run(string(nb), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Iterations = 200
			cfg.NeighborsPerIter = 20
			cfg.Neighborhood = nb

			s, err := New(cfg, rand.New(rand.NewSource(42)))
			require.NoError(t, err)

			inst := testInstance(t, 12, 4, 1)
			res, err := s.Solve(context.Background(), inst)
			require.NoError(t, err)

			require.NoError(t, flowshop.ValidatePermutation(res.Permutation, inst.Jobs))

			eval, err := flowshop.NewEvaluator(inst)
			require.NoError(t, err)
			ms, err := eval.Makespan(res.Permutation)
			require.NoError(t, err)
			assert.Equal(t, ms, res.Makespan)
			assert.LessOrEqual(t, res.Iterations, 200)
			assert.Positive(t, res.Evaluations)
		})
	}
}

func TestSolve_ImprovesOnInitialPermutation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 300
	cfg.NeighborsPerIter = 30

	inst := testInstance(t, 15, 5, 2)

	// Начальное решение генерируется тем же генератором с тем же сидом
	initial := flowshop.RandomPermutation(inst.Jobs, rand.New(rand.NewSource(9)))
	eval, err := flowshop.NewEvaluator(inst)
	require.NoError(t, err)
	initialMs, err := eval.Makespan(initial)
	require.NoError(t, err)

	s, err := New(cfg, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)

	assert.LessOrEqual(t, res.Makespan, initialMs)
}

func TestSolve_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 100
	cfg.NeighborsPerIter = 10
	inst := testInstance(t, 10, 3, 3)

	run := func() []int {
		s, err := New(cfg, rand.New(rand.NewSource(5)))
		require.NoError(t, err)
		res, err := s.Solve(context.Background(), inst)
		require.NoError(t, err)
		return res.Permutation
	}
	assert.Equal(t, run(), run())
}

func TestSolve_StopsAtTargetMakespan(t *testing.T) {
	inst := testInstance(t, 8, 3, 4)

	cfg := DefaultConfig()
	cfg.Iterations = 500
	// Любая перестановка удовлетворяет огромной цели
	cfg.TargetMakespan = 1_000_000

	s, err := New(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)

	assert.Equal(t, string(tabu.StopThreshold), res.Stopped)
	assert.Zero(t, res.Iterations)
}

func TestSolve_SingleJobHasNoNeighbors(t *testing.T) {
	inst, err := flowshop.NewInstance(1, 2, []int{3, 4})
	require.NoError(t, err)

	s, err := New(DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, res.Permutation)
	assert.Equal(t, 7, res.Makespan)
	assert.Equal(t, string(tabu.StopNoNeighbors), res.Stopped)
}

func TestSolve_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New(DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	res, err := s.Solve(ctx, testInstance(t, 6, 2, 5))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, string(tabu.StopContext), res.Stopped)
	assert.Len(t, res.Permutation, 6)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.TabuTenure = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Iterations, bad.IterationsPerJob = 0, 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.NeighborsPerIter = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Neighborhood = "2opt"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.TargetMakespan = -1
	assert.Error(t, bad.Validate())

	_, err := New(cfg, nil)
	assert.Error(t, err)
}
