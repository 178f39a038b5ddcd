package personnel

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "datagrid-tools/internal/common/errors"
	"datagrid-tools/internal/common/logger"
	"datagrid-tools/internal/common/logger/loggertest"
	"datagrid-tools/internal/common/metrics"
	"datagrid-tools/pkg/registry"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestHandler_Execute(t *testing.T) {
	rec := metrics.New()
	h := NewHandler(createTestConfig(100, 5), registry.Default(), rec, loggertest.New(t))

	var out bytes.Buffer
	require.NoError(t, h.Execute(&out, ModeBasic))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "INSERT INTO personnel (name, email, department, salary, is_valid, is_active, data) VALUES\n"))
	assert.True(t, strings.HasSuffix(text, ")\nON CONFLICT (id) DO NOTHING;\n"))
	assert.Equal(t, 99, strings.Count(text, ",\n"))
	assert.Equal(t, 100.0, testutil.ToFloat64(rec.RowsGenerated.WithLabelValues("basic")))
}

func TestHandler_Execute_WriteFailure(t *testing.T) {
	h := NewHandler(createTestConfig(3, 5), registry.Default(), nil, logger.NewNoOpLogger())

	err := h.Execute(failingWriter{}, ModeExtended)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeOutputWriteFailed))
}
