package bench

import (
	"context"
	"encoding/csv"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaheuristics/internal/flowshop"
	"metaheuristics/internal/opt"
	"metaheuristics/internal/ts"
)

// identitySolver всегда возвращает тождественную перестановку.
type identitySolver struct{ err error }

func (s identitySolver) Solve(_ context.Context, inst *flowshop.Instance) (opt.Result, error) {
	if s.err != nil {
		return opt.Result{}, s.err
	}
	perm := make([]int, inst.Jobs)
	flowshop.Identity(perm)
	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}
	ms, err := eval.Makespan(perm)
	return opt.Result{Permutation: perm, Makespan: ms, Evaluations: 1}, err
}

func TestCalcIntStats(t *testing.T) {
	s := CalcIntStats([]int{4, 2, 6})
	assert.Equal(t, 3, s.N)
	assert.Equal(t, 2, s.Best)
	assert.InDelta(t, 4.0, s.Mean, 1e-9)
	assert.InDelta(t, 2.0, s.Std, 1e-9)

	one := CalcIntStats([]int{7})
	assert.Equal(t, 7, one.Best)
	assert.Zero(t, one.Std)

	assert.Zero(t, CalcIntStats(nil).N)
}

func TestCalcFloatStats(t *testing.T) {
	s := CalcFloatStats([]float64{1.5, 0.5})
	assert.Equal(t, 0.5, s.Best)
	assert.InDelta(t, 1.0, s.Mean, 1e-9)
	assert.InDelta(t, 0.70710678, s.Std, 1e-6)
}

func TestParsePairs(t *testing.T) {
	cases, err := ParsePairs("20x5, 50X10", 777)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, Case{Jobs: 20, Machines: 5, InstanceSeed: 777 + 2000 + 5}, cases[0])
	assert.Equal(t, Case{Jobs: 50, Machines: 10, InstanceSeed: 777 + 10_000 + 5000 + 10}, cases[1])

	for _, bad := range []string{"", "20", "ax5", "20x0", "1x2x3"} {
		_, err := ParsePairs(bad, 1)
		assert.Error(t, err, bad)
	}
}

func TestRunner_RunCaseParallelMatchesSequential(t *testing.T) {
	cfg := ts.DefaultConfig()
	cfg.Iterations = 50
	cfg.NeighborsPerIter = 10
	algo := Algorithm{
		Name: "TS",
		Factory: func(seed int64) (opt.Optimizer, error) {
			return ts.New(cfg, rand.New(rand.NewSource(seed)))
		},
	}
	c := Case{Jobs: 8, Machines: 3, InstanceSeed: 5}

	seq := Runner{Runs: 6, BaseSeed: 100, RunID: "r1"}
	par := seq
	par.Parallel = 4

	a, err := seq.RunCase(context.Background(), c, algo)
	require.NoError(t, err)
	b, err := par.RunCase(context.Background(), c, algo)
	require.NoError(t, err)

	assert.Equal(t, "r1", a.RunID)
	assert.Equal(t, 6, a.Runs)
	assert.Equal(t, a.MakespanBest, b.MakespanBest)
	assert.InDelta(t, a.MakespanMean, b.MakespanMean, 1e-9)
	assert.InDelta(t, a.EvaluationsMean, b.EvaluationsMean, 1e-9)
}

func TestRunner_PropagatesSolverError(t *testing.T) {
	boom := errors.New("boom")
	algo := Algorithm{
		Name: "X",
		Factory: func(int64) (opt.Optimizer, error) {
			return identitySolver{err: boom}, nil
		},
	}
	_, err := Runner{Runs: 3, Parallel: 2}.RunCase(context.Background(), Case{Jobs: 3, Machines: 2, InstanceSeed: 1}, algo)
	assert.ErrorIs(t, err, boom)

	_, err = Runner{Runs: 0}.RunCase(context.Background(), Case{Jobs: 3, Machines: 2}, algo)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	algo := Algorithm{
		Name: "ID",
		Factory: func(int64) (opt.Optimizer, error) {
			return identitySolver{}, nil
		},
	}
	rec, err := Runner{Runs: 2, RunID: "abc"}.RunCase(context.Background(), Case{Jobs: 4, Machines: 2, InstanceSeed: 3}, algo)
	require.NoError(t, err)
	assert.Zero(t, rec.MakespanStd)

	path := filepath.Join(t.TempDir(), "out", "results.csv")
	require.NoError(t, WriteCSV(path, []Record{rec}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "run_id", rows[0][0])
	assert.Equal(t, []string{"abc", "ID", "4", "2", "2"}, rows[1][:5])
	assert.Len(t, rows[1], len(rows[0]))
}
