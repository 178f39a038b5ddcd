// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datagrid-tools/internal/catalog"
	"datagrid-tools/internal/common/logger/loggertest"
	"datagrid-tools/internal/common/metrics"
	"datagrid-tools/internal/personnel"
	"datagrid-tools/pkg/registry"
)

// dataSchema describes the JSON blob of the data column for both modes.
const dataSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["experience"],
	"additionalProperties": false,
	"properties": {
		"role": {"type": "string", "minLength": 1},
		"experience": {"type": "integer", "minimum": 1, "maximum": 20},
		"tags": {"type": "array", "minItems": 1, "maxItems": 4, "uniqueItems": true, "items": {"type": "string"}},
		"certifications": {"type": "array", "minItems": 1, "maxItems": 2, "uniqueItems": true, "items": {"type": "string"}}
	}
}`

var dataColumn = regexp.MustCompile(`'(\{.*\})'\),?$`)

func TestFullE2E(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "data.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(dataSchema), 0o644))

	t.Log("🚀 Generating personnel statements and validating their data blobs...")

	for _, mode := range []personnel.Mode{personnel.ModeBasic, personnel.ModeExtended} {
		t.Run(string(mode), func(t *testing.T) {
			// 1. Render a seeded statement
			stmt := renderStatement(t, mode, 25)

			// 2. Write each data literal as its own catalog
			catalogs := writeDataCatalogs(t, dir, mode, stmt)
			require.Len(t, catalogs, 25)

			// 3. Validate them as one batch
			var out bytes.Buffer
			rec := metrics.New()
			report, err := catalog.NewValidator(&out, rec, loggertest.New(t)).ValidateAll(schemaPath, catalogs)
			require.NoError(t, err)
			assert.True(t, report.AllValid(), out.String())
			assert.Equal(t, 25, strings.Count(out.String(), "✅ "))

			t.Logf("✅ %s: %d data blobs valid", mode, len(report.Results))
		})
	}
}

func TestE2E_TamperedCatalogIsReported(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "data.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(dataSchema), 0o644))

	stmt := renderStatement(t, personnel.ModeBasic, 2)
	catalogs := writeDataCatalogs(t, dir, personnel.ModeBasic, stmt)
	require.Len(t, catalogs, 2)

	var blob map[string]interface{}
	raw, err := os.ReadFile(catalogs[0])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &blob))
	blob["salary"] = 1
	raw, err = json.Marshal(blob)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(catalogs[0], raw, 0o644))

	var out bytes.Buffer
	report, err := catalog.NewValidator(&out, nil, loggertest.New(t)).ValidateAll(schemaPath, catalogs)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed())
	assert.Contains(t, out.String(), "❌ basic-000.json is invalid!\n   Reason: Additional properties are not allowed ('salary' was unexpected)\n   Path: \n")
	assert.Contains(t, out.String(), "✅ basic-001.json is valid.\n")
}

// ==========================
// Helpers
// ==========================

func renderStatement(t *testing.T, mode personnel.Mode, count int) string {
	t.Helper()
	cfg := &personnel.Config{Count: count, Table: "personnel", Seed: 2024, Seeded: true}
	h := personnel.NewHandler(cfg, registry.Default(), nil, loggertest.New(t))

	var buf bytes.Buffer
	require.NoError(t, h.Execute(&buf, mode))
	return buf.String()
}

func writeDataCatalogs(t *testing.T, dir string, mode personnel.Mode, stmt string) []string {
	t.Helper()
	var paths []string
	for _, line := range strings.Split(stmt, "\n") {
		m := dataColumn.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s-%03d.json", mode, len(paths)))
		require.NoError(t, os.WriteFile(path, []byte(m[1]), 0o644))
		paths = append(paths, path)
	}
	return paths
}
