package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogsCommandStructure(t *testing.T) {
	assert.NotNil(t, catalogsCmd)
	assert.Equal(t, "catalogs [name]", catalogsCmd.Use)
	assert.NotEmpty(t, catalogsCmd.Short)
	assert.NotEmpty(t, catalogsCmd.Long)
	assert.NotNil(t, catalogsCmd.RunE)
	assert.Error(t, catalogsCmd.Args(catalogsCmd, []string{"a", "b"}))
}

func TestRunCatalogs(t *testing.T) {
	writeProject(t)

	out, err := runCapture(t, func() error { return runCatalogs(catalogsCmd, nil) })
	require.NoError(t, err)

	assert.Contains(t, out, "Built-in catalogs:")
	assert.Contains(t, out, "1. go-spec\n")
	assert.Contains(t, out, "2. jls3\n")
	assert.Contains(t, out, "   Title:       The Java Language Specification, Third Edition\n")
	assert.Contains(t, out, "   Provider:    schema\n")
	assert.Contains(t, out, "   Types:       64\n")
	assert.Contains(t, out, "Total: 2 catalog(s)")
}

func TestRunCatalogs_One(t *testing.T) {
	writeProject(t)

	out, err := runCapture(t, func() error { return runCatalogs(catalogsCmd, []string{"go-spec"}) })
	require.NoError(t, err)

	assert.Contains(t, out, "go-spec: The Go Programming Language Specification\n")
	assert.Contains(t, out, "  runtime.Error  Run-time panics\n")
	assert.Contains(t, out, "  error          Errors\n")
	assert.Contains(t, out, "Total: 3 type(s)")
	assert.NotContains(t, out, "predeclared error interface")

	catalogsVerbose = true
	out, err = runCapture(t, func() error { return runCatalogs(catalogsCmd, []string{"GO-SPEC"}) })
	require.NoError(t, err)
	assert.Contains(t, out, "(predeclared error interface)")
	assert.Equal(t, 1, strings.Count(out, "Total:"))
}

func TestRunCatalogs_Unknown(t *testing.T) {
	writeProject(t)

	_, err := runCapture(t, func() error { return runCatalogs(catalogsCmd, []string{"c++98"}) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: go-spec, jls3")
}
