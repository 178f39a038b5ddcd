package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "datagrid-tools/internal/common/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Scenarios(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.json", `{"type":"object","required":["x"]}`)
	good := writeFile(t, dir, "good.json", `{"x":1}`)
	empty := writeFile(t, dir, "empty.json", `{}`)

	tests := []struct {
		name     string
		args     []string
		code     int
		expected string
	}{
		{
			name:     "valid catalog",
			args:     []string{schema, good},
			code:     apperrors.ExitOK,
			expected: "✅ good.json is valid.\n",
		},
		{
			name:     "missing required property",
			args:     []string{schema, empty},
			code:     apperrors.ExitFailure,
			expected: "❌ empty.json is invalid!\n   Reason: 'x' is a required property\n   Path: \n",
		},
		{
			name: "one valid one invalid",
			args: []string{schema, good, empty},
			code: apperrors.ExitFailure,
			expected: "✅ good.json is valid.\n" +
				"❌ empty.json is invalid!\n   Reason: 'x' is a required property\n   Path: \n",
		},
		{
			name:     "single argument",
			args:     []string{schema},
			code:     apperrors.ExitFailure,
			expected: usageLine + "\n",
		},
		{
			name:     "no arguments",
			args:     nil,
			code:     apperrors.ExitFailure,
			expected: usageLine + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := execute(t, tt.args...)

			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRun_UsageReadsNoFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.json")

	code, out, errOut := execute(t, missing)

	assert.Equal(t, apperrors.ExitFailure, code)
	assert.Equal(t, usageLine+"\n", out)
	assert.NotContains(t, errOut, "FILE_NOT_FOUND")
}

func TestRun_StructuralFailures(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.json", `{"type":"object","required":["x"]}`)
	good := writeFile(t, dir, "good.json", `{"x":1}`)
	broken := writeFile(t, dir, "broken.json", `{"x": [1,`)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"missing schema", []string{filepath.Join(dir, "none.json"), good}, "FILE_NOT_FOUND"},
		{"missing catalog", []string{schema, filepath.Join(dir, "none.json")}, "FILE_NOT_FOUND"},
		{"malformed catalog", []string{schema, broken}, "PARSE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := execute(t, tt.args...)

			assert.Equal(t, apperrors.ExitStructural, code)
			assert.Contains(t, errOut, tt.code)
		})
	}
}

func TestRun_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.json", `{"type":"object","required":["x"]}`)
	good := writeFile(t, dir, "good.json", `{"x":1}`)
	empty := writeFile(t, dir, "empty.json", `{}`)
	prom := filepath.Join(dir, "catalog.prom")

	code, _, _ := execute(t, "--metrics-file", prom, schema, good, empty)
	require.Equal(t, apperrors.ExitFailure, code)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `catalog_validations_total{result="valid"} 1`)
	assert.Contains(t, string(data), `catalog_validations_total{result="invalid"} 1`)
}

func TestRun_UnknownFlag(t *testing.T) {
	code, out, errOut := execute(t, "--strict", "schema.json", "a.json")

	assert.Equal(t, apperrors.ExitFailure, code)
	assert.Equal(t, usageLine+"\n", out)
	assert.Contains(t, errOut, "unknown flag")
}

func TestRun_IgnoresUnrelatedConfiguration(t *testing.T) {
	fixtures := t.TempDir()
	schema := writeFile(t, fixtures, "schema.json", `{"type":"object","required":["x"]}`)
	good := writeFile(t, fixtures, "good.json", `{"x":1}`)

	tests := []struct {
		name  string
		setup func(t *testing.T, cwd string)
	}{
		{
			name: "foreign config.yaml in working directory",
			setup: func(t *testing.T, cwd string) {
				writeFile(t, cwd, "config.yaml", "logging:\n  format: text\n")
			},
		},
		{
			name: "unparsable config.yaml in configs directory",
			setup: func(t *testing.T, cwd string) {
				require.NoError(t, os.Mkdir(filepath.Join(cwd, "configs"), 0o755))
				writeFile(t, filepath.Join(cwd, "configs"), "config.yaml", "generator: [unclosed\n")
			},
		},
		{
			name: "generator settings in the environment",
			setup: func(t *testing.T, _ string) {
				t.Setenv("GENERATOR_COUNT", "0")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cwd := t.TempDir()
			tt.setup(t, cwd)
			t.Chdir(cwd)

			code, out, errOut := execute(t, schema, good)

			assert.Equal(t, apperrors.ExitOK, code, errOut)
			assert.Equal(t, "✅ good.json is valid.\n", out)
			assert.NotContains(t, errOut, "CONFIG_INVALID")
		})
	}
}

func TestRun_ExplicitConfigMustBeValid(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.json", `{"type":"object","required":["x"]}`)
	good := writeFile(t, dir, "good.json", `{"x":1}`)
	cfg := writeFile(t, dir, "validator.yaml", "logging:\n  format: text\n")

	code, out, errOut := execute(t, "--config", cfg, schema, good)

	assert.Equal(t, apperrors.ExitStructural, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "CONFIG_INVALID")
}

func TestRun_ExplicitConfigIgnoresGeneratorSection(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.json", `{"type":"object","required":["x"]}`)
	good := writeFile(t, dir, "good.json", `{"x":1}`)
	cfg := writeFile(t, dir, "shared.yaml", "generator:\n  count: 0\n")

	code, _, _ := execute(t, "--config", cfg, schema, good)
	assert.Equal(t, apperrors.ExitOK, code)
}
