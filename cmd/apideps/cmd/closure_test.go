package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/apideps/internal/report"
	"github.com/dbsmedya/apideps/internal/typesys"
)

func runCapture(t *testing.T, run func() error) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	for _, c := range rootCmd.Commands() {
		c.SetOut(&buf)
	}
	t.Cleanup(func() {
		for _, c := range rootCmd.Commands() {
			c.SetOut(nil)
		}
	})
	err := run()
	return buf.String(), err
}

func TestClosureCommandStructure(t *testing.T) {
	assert.Equal(t, "closure", closureCmd.Use)
	assert.NotEmpty(t, closureCmd.Short)
	assert.Contains(t, closureCmd.Long, "Example:")
	assert.NotNil(t, closureCmd.RunE)

	for _, name := range []string{"members", "cycles", "order"} {
		assert.NotNil(t, closureCmd.Flags().Lookup(name), name)
	}
}

func TestRunClosure(t *testing.T) {
	writeProject(t, "lang.String")

	out, err := runCapture(t, func() error { return runClosure(closureCmd, nil) })
	require.NoError(t, err)

	assert.Contains(t, out, "API closure of 1 seed type(s)")
	assert.Contains(t, out, "  Types:         2\n")
	assert.Contains(t, out, "  Namespaces:    1\n")
	assert.Contains(t, out, "  Members:       1\n")
	assert.Contains(t, out, "[Types (2)]\n-----------\n  lang.Object\n  lang.String  seed\n")
	assert.NotContains(t, out, "lang.Unused")
}

func TestRunClosure_Overrides(t *testing.T) {
	writeProject(t, "lang.String")
	reportFormat = "json"
	showMembers = true
	showCycles = true
	seedNames = []string{"lang.Unused"}

	out, err := runCapture(t, func() error { return runClosure(closureCmd, nil) })
	require.NoError(t, err)

	var got report.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"lang.String", "lang.Unused"}, got.Seeds)
	assert.Equal(t, 3, got.Counts.Types)
	require.Len(t, got.Members, 1)
	assert.Equal(t, "lang.Object.toString()", got.Members[0].Name)
	require.NotNil(t, got.Cycles)
	assert.True(t, got.Cycles.Cyclic, "Object and String depend on each other")
	assert.Contains(t, got.Dependencies, report.EdgeEntry{
		From:      "lang.Object",
		To:        "lang.String",
		Relations: []string{"result"},
		Members:   []string{"lang.Object.toString()"},
	})
}

func TestRunClosure_Order(t *testing.T) {
	writeProject(t, "lang.Unused")
	showOrder = true

	out, err := runCapture(t, func() error { return runClosure(closureCmd, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "[Dependency order]\n------------------\n  1. lang.Unused\n")

	writeProject(t, "lang.String")
	showOrder = true

	out, err = runCapture(t, func() error { return runClosure(closureCmd, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "  unavailable: 2 type(s) lie on or behind a cycle\n")
}

func TestRunClosure_UnresolvedSeed(t *testing.T) {
	writeProject(t, "lang.String", "lang.Missing")

	_, err := runCapture(t, func() error { return runClosure(closureCmd, nil) })
	require.Error(t, err)

	var resErr *typesys.ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "lang.Missing", resErr.Name)
	assert.True(t, errors.Is(err, typesys.ErrNotFound))
}

func TestRunClosure_InvalidConfig(t *testing.T) {
	writeProject(t)

	_, err := runCapture(t, func() error { return runClosure(closureCmd, nil) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "seeds")
}

func TestRunClosure_UnknownCatalog(t *testing.T) {
	writeProject(t, "lang.String")
	catalogName = "nope"

	_, err := runCapture(t, func() error { return runClosure(closureCmd, nil) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown catalog "nope"`)
}

func TestRunClosure_MissingSchema(t *testing.T) {
	writeProject(t, "lang.String")
	schemaPath = "/nonexistent/schema.yaml"

	_, err := runCapture(t, func() error { return runClosure(closureCmd, nil) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}
