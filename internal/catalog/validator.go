// internal/catalog/validator.go
package catalog

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/xeipuuv/gojsonschema"

	apperrors "datagrid-tools/internal/common/errors"
	"datagrid-tools/internal/common/logger"
	"datagrid-tools/internal/common/metrics"
	"datagrid-tools/internal/common/validation"
)

const (
	validMarker   = "✅"
	invalidMarker = "❌"
)

// Validator checks catalogs against a schema and prints one report block
// per catalog to out.
type Validator struct {
	out     io.Writer
	metrics *metrics.Recorder
	logger  logger.Logger
	schemas map[string]*gojsonschema.Schema
}

func NewValidator(out io.Writer, rec *metrics.Recorder, log logger.Logger) *Validator {
	return &Validator{
		out:     out,
		metrics: rec,
		logger:  log,
		schemas: make(map[string]*gojsonschema.Schema),
	}
}

// Validate checks one catalog. The bool is the validation verdict; an error
// means the schema or catalog could not be read, parsed or compiled.
func (v *Validator) Validate(schemaPath, catalogPath string) (bool, error) {
	res, err := v.check(schemaPath, catalogPath)
	if err != nil {
		return false, err
	}
	if err := v.print(res); err != nil {
		return false, err
	}
	return res.Valid, nil
}

// ValidateAll checks every catalog in order. Invalid catalogs do not stop
// the batch; a structural error does.
func (v *Validator) ValidateAll(schemaPath string, catalogPaths []string) (*Report, error) {
	report := &Report{Schema: schemaPath}
	for _, catalogPath := range catalogPaths {
		res, err := v.check(schemaPath, catalogPath)
		if err != nil {
			return report, err
		}
		if err := v.print(res); err != nil {
			return report, err
		}
		report.Results = append(report.Results, *res)
	}

	v.logger.Info("catalog batch finished", map[string]interface{}{
		"schema": schemaPath,
		"total":  len(report.Results),
		"failed": report.Failed(),
	})
	return report, nil
}

func (v *Validator) check(schemaPath, catalogPath string) (*Result, error) {
	start := time.Now()

	schema, err := v.loadSchema(schemaPath)
	if err != nil {
		v.observeFailure(err)
		return nil, err
	}

	doc, err := validation.LoadDocument(catalogPath)
	if err != nil {
		v.observeFailure(err)
		return nil, err
	}

	checked, err := validation.Check(schema, doc)
	if err != nil {
		wrapped := apperrors.NewSchemaInvalidError(schemaPath, err)
		v.observeFailure(wrapped)
		return nil, wrapped
	}

	res := &Result{
		Catalog: catalogPath,
		Valid:   checked.Valid,
		Details: checked.Violations,
	}
	if !checked.Valid {
		res.Violation = checked.First()
		v.logger.Debug("catalog rejected", map[string]interface{}{
			"catalog":    catalogPath,
			"violations": len(checked.Violations),
			"first":      res.Violation.Message,
			"path":       res.Violation.Path,
		})
	}

	v.metrics.ObserveCatalog(res.Valid, time.Since(start).Seconds())
	return res, nil
}

// loadSchema compiles schemaPath once per validator.
func (v *Validator) loadSchema(schemaPath string) (*gojsonschema.Schema, error) {
	if schema, ok := v.schemas[schemaPath]; ok {
		return schema, nil
	}

	doc, err := validation.LoadDocument(schemaPath)
	if err != nil {
		return nil, err
	}
	schema, err := validation.CompileSchema(schemaPath, doc)
	if err != nil {
		return nil, err
	}
	v.schemas[schemaPath] = schema
	return schema, nil
}

func (v *Validator) print(res *Result) error {
	name := filepath.Base(res.Catalog)

	var err error
	if res.Valid {
		_, err = fmt.Fprintf(v.out, "%s %s is valid.\n", validMarker, name)
	} else {
		_, err = fmt.Fprintf(v.out, "%s %s is invalid!\n   Reason: %s\n   Path: %s\n",
			invalidMarker, name, res.Violation.Message, res.Violation.Path)
	}
	if err != nil {
		return apperrors.NewOutputWriteFailedError(err)
	}
	return nil
}

func (v *Validator) observeFailure(err error) {
	if stdErr, ok := apperrors.AsStandardError(err); ok {
		v.metrics.ObserveStructuralFailure(string(stdErr.Code))
	}
}
