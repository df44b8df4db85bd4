package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommandStructure(t *testing.T) {
	assert.NotNil(t, validateCmd)
	assert.Equal(t, "validate", validateCmd.Use)
	assert.NotEmpty(t, validateCmd.Short)
	assert.Contains(t, validateCmd.Short, "Validate")
	assert.NotNil(t, validateCmd.RunE)
}

func TestValidateCommandChecks(t *testing.T) {
	doc := validateCmd.Long
	assert.Contains(t, doc, "Example:")
	assert.Contains(t, doc, "apideps validate")
	assert.Contains(t, doc, "Checks performed")
	assert.Contains(t, doc, "Configuration")
	assert.Contains(t, doc, "catalog")
	assert.Contains(t, doc, "Seed type resolution")
}

func TestRunValidate(t *testing.T) {
	tests := []struct {
		name    string
		seeds   []string
		setup   func()
		wantErr bool
		want    []string
	}{
		{
			name:  "valid",
			seeds: []string{"lang.String", "lang.Object"},
			want: []string{
				"✅ Configuration valid",
				"✅ Provider schema available",
				"✅ All 2 seed type(s) resolved",
				"=== Validation Complete ===",
			},
		},
		{
			name:    "no seeds",
			wantErr: true,
			want:    []string{"❌ Configuration invalid", "seeds: a catalog or at least one seed name is required"},
		},
		{
			name:    "unknown catalog",
			seeds:   []string{"lang.String"},
			setup:   func() { catalogName = "c++98" },
			wantErr: true,
			want:    []string{`❌ unknown catalog "c++98"`},
		},
		{
			name:    "missing schema",
			seeds:   []string{"lang.String"},
			setup:   func() { schemaPath = "/nonexistent/schema.yaml" },
			wantErr: true,
			want:    []string{"❌ Provider unavailable"},
		},
		{
			name:    "unresolved seeds",
			seeds:   []string{"lang.String", "lang.Missing", "lang.Gone"},
			wantErr: true,
			want: []string{
				`❌ failed to resolve "lang.Missing"`,
				`❌ failed to resolve "lang.Gone"`,
				"2 of 3 seed type(s) could not be resolved",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeProject(t, tt.seeds...)
			if tt.setup != nil {
				tt.setup()
			}

			out, err := runCapture(t, func() error { return runValidate(validateCmd, nil) })
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}
