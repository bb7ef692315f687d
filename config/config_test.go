package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlatFile_SkipsCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.txt")
	content := "# a comment\n\nfile=inst.vrp\nsisr.maxStringLength=12\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	kv, err := parseFlatFile(path)
	require.NoError(t, err)
	assert.Equal(t, "inst.vrp", kv["file"])
	assert.Equal(t, "12", kv["sisr.maxStringLength"])
	assert.Len(t, kv, 2)
}

func TestParseFlatFile_RejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.txt")
	require.NoError(t, os.WriteFile(path, []byte("not-a-kv-pair\n"), 0o644))

	_, err := parseFlatFile(path)
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestApplyFlat_OverridesNestedConfig(t *testing.T) {
	s := DefaultSettings()
	kv := map[string]string{
		"sisr.maxStringLength": "15",
		"eliteSetBeta":         "0.7",
		"perturbation":         "Sequential, SISR",
	}
	require.NoError(t, applyFlat(kv, &s))

	assert.Equal(t, 15, s.MultiStart.AILS.SISR.Lmax)
	assert.InDelta(t, 0.7, s.MultiStart.AILS.Elite.Beta, 1e-9)
	assert.Equal(t, []string{"Sequential", "SISR"}, s.MultiStart.AILS.EnabledOperators)
}

func TestApplyFlat_IgnoresUnknownKey(t *testing.T) {
	s := DefaultSettings()
	before := s
	err := applyFlat(map[string]string{"bogusKey": "1"}, &s)
	require.NoError(t, err)
	assert.Equal(t, before.MultiStart.NumWorkers, s.MultiStart.NumWorkers)
}

func TestLoad_FileThenCLIPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.txt")
	require.NoError(t, os.WriteFile(path, []byte("file=inst.vrp\nmultiStart.numWorkerThreads=2\n"), 0o644))

	s, err := Load(path, []string{"-multiStart.numWorkerThreads=9"})
	require.NoError(t, err)

	assert.Equal(t, "inst.vrp", s.InstancePath)
	assert.Equal(t, 9, s.MultiStart.NumWorkers)
	assert.Equal(t, s.MultiStart.AILS, s.AILS)
}

func TestLoad_NoParamFileUsesDefaults(t *testing.T) {
	s, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings().MultiStart.NumWorkers, s.MultiStart.NumWorkers)
}

func TestLoad_StoppingCriterionIteration(t *testing.T) {
	s, err := Load("", []string{"-file=inst.vrp", "-limit=500", "-stoppingCriterion=Iteration"})
	require.NoError(t, err)

	assert.Equal(t, int64(500), s.AILS.MaxIterations)
	assert.Equal(t, time.Duration(0), s.MultiStart.Budget)
}

func TestLoad_StoppingCriterionTime(t *testing.T) {
	s, err := Load("", []string{"-file=inst.vrp", "-limit=30", "-stoppingCriterion=Time"})
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, s.MultiStart.Budget)
	assert.Equal(t, int64(0), s.AILS.MaxIterations)
}

func TestLoadYAMLFile_AppliesNestedSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	content := "file: inst.vrp\nsisr:\n  maxStringLength: 20\nmultiStart:\n  numWorkerThreads: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := DefaultSettings()
	require.NoError(t, loadYAMLFile(path, &s))

	assert.Equal(t, "inst.vrp", s.InstancePath)
	assert.Equal(t, 20, s.MultiStart.AILS.SISR.Lmax)
	assert.Equal(t, 4, s.MultiStart.NumWorkers)
}
