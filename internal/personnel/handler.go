// internal/personnel/handler.go
package personnel

import (
	"fmt"
	"io"

	apperrors "datagrid-tools/internal/common/errors"
	"datagrid-tools/internal/common/logger"
	"datagrid-tools/internal/common/metrics"
	"datagrid-tools/pkg/registry"
)

// Handler runs one generator invocation: build records, render, write.
type Handler struct {
	generator *Generator
	renderer  *Renderer
	metrics   *metrics.Recorder
	logger    logger.Logger
}

func NewHandler(cfg *Config, reg *registry.LookupRegistry, rec *metrics.Recorder, log logger.Logger) *Handler {
	return &Handler{
		generator: NewGenerator(cfg, reg, log),
		renderer:  NewRenderer(cfg),
		metrics:   rec,
		logger:    log,
	}
}

// Execute writes one INSERT statement for mode to w.
func (h *Handler) Execute(w io.Writer, mode Mode) error {
	records := h.generator.Generate(mode)

	stmt, err := h.renderer.Statement(mode, records)
	if err != nil {
		return fmt.Errorf("render %s statement: %w", mode, err)
	}

	if _, err := io.WriteString(w, stmt); err != nil {
		return apperrors.NewOutputWriteFailedError(err)
	}

	h.metrics.ObserveRows(string(mode), len(records))
	h.logger.Info("personnel statement written", map[string]interface{}{
		"mode":  string(mode),
		"rows":  len(records),
		"bytes": len(stmt),
	})
	return nil
}
