package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaheuristics/internal/config"
	"metaheuristics/internal/flowshop"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDemo_ConvergesToTarget(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "best=10 score=0 best_score=0 iterations=10 reason=threshold")
}

func TestDemo_EmptyNeighborhood(t *testing.T) {
	out, err := execute(t, "demo", "--no_neighbors")
	require.NoError(t, err)
	assert.Contains(t, out, "best=0 score=10 best_score=10 iterations=0 reason=no_neighbors")
}

func TestDemo_InvalidTenure(t *testing.T) {
	_, err := execute(t, "demo", "--tenure", "0")
	assert.Error(t, err)
}

func TestRun_WritesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	out, err := execute(t, "run",
		"--pairs", "6x2,8x3",
		"--algos", "TS,GA",
		"--runs", "2",
		"--parallel", "2",
		"--ts_iter", "20",
		"--ts_neighbors", "5",
		"--ga_pop", "10",
		"--ga_parents", "4",
		"--ga_gen", "5",
		"--out", path,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "TS 6x2")
	assert.Contains(t, out, "GA 8x3")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 1+4)
}

func TestRun_ConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bench.yaml")
	outPath := filepath.Join(dir, "out.csv")
	cfg := "pairs: 5x2\nalgos: TS\nruns: 1\nts:\n  iterations: 10\n  neighbors: 4\nout: " + outPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	out, err := execute(t, "--config", cfgPath, "run", "--runs", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "TS 5x2")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	// run_id,algo,jobs,machines,runs,...
	assert.Contains(t, string(data), ",TS,5,2,3,")
}

func TestRun_RejectsUnknownAlgorithm(t *testing.T) {
	_, err := execute(t, "run", "--algos", "ACO", "--out", filepath.Join(t.TempDir(), "x.csv"))
	assert.Error(t, err)
}

func TestSolve_RandomAndFileInstance(t *testing.T) {
	instPath := filepath.Join(t.TempDir(), "inst.yaml")

	out, err := execute(t, "solve", "--jobs", "7", "--machines", "3", "--save-instance", instPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Алгоритм: TS")
	assert.Contains(t, out, "Makespan:")

	inst, err := flowshop.LoadInstance(instPath)
	require.NoError(t, err)
	assert.Equal(t, 7, inst.Jobs)

	out, err = execute(t, "solve", "--algo", "GA", "--instance", instPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Алгоритм: GA")
}

func TestSolve_AlgoFlagIsNormalized(t *testing.T) {
	var (
		out string
		err error
	)
	require.NotPanics(t, func() {
		out, err = execute(t, "solve", "--jobs", "5", "--machines", "2", "--algo", " TS")
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Алгоритм: TS")
}

func TestSolve_RejectsSeveralAlgorithms(t *testing.T) {
	var err error
	require.NotPanics(t, func() {
		_, err = execute(t, "solve", "--jobs", "5", "--machines", "2", "--algo", "GA,TS")
	})
	assert.Error(t, err)
}

func TestRun_DumpConfig(t *testing.T) {
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "effective.yaml")
	outPath := filepath.Join(dir, "out.csv")

	_, err := execute(t, "run", "--runs", "4", "--ts_iter", "33", "--out", outPath, "--dump-config", dumpPath)
	require.NoError(t, err)

	cfg, err := config.Load(dumpPath)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Runs)
	assert.Equal(t, 33, cfg.TS.Iterations)
	assert.Equal(t, outPath, cfg.Out)

	_, err = os.Stat(outPath)
	assert.True(t, os.IsNotExist(err))
}
