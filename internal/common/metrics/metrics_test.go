package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveCatalog(t *testing.T) {
	rec := New()

	rec.ObserveCatalog(true, 0.001)
	rec.ObserveCatalog(false, 0.002)
	rec.ObserveCatalog(false, 0.003)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.CatalogsValidated.WithLabelValues("valid")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.CatalogsValidated.WithLabelValues("invalid")))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.CatalogDuration))
}

func TestRecorder_ObserveRows(t *testing.T) {
	rec := New()
	rec.ObserveRows("extended", 100)
	rec.ObserveRows("basic", 3)

	assert.Equal(t, 100.0, testutil.ToFloat64(rec.RowsGenerated.WithLabelValues("extended")))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.RowsGenerated.WithLabelValues("basic")))
}

func TestRecorder_NilSafe(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.ObserveCatalog(true, 0)
		rec.ObserveRows("basic", 1)
		rec.ObserveStructuralFailure("PARSE_ERROR")
	})
}

func TestRecorder_WriteTextfile(t *testing.T) {
	rec := New()
	rec.ObserveCatalog(true, 0.001)
	rec.ObserveStructuralFailure("FILE_NOT_FOUND")

	path := filepath.Join(t.TempDir(), "catalogs.prom")
	require.NoError(t, rec.WriteTextfile(path))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `catalog_validations_total{result="valid"} 1`)
	assert.Contains(t, string(body), `catalog_structural_failures_total{error_code="FILE_NOT_FOUND"} 1`)
}
