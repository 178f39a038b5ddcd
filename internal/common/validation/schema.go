package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/xeipuuv/gojsonschema"

	apperrors "datagrid-tools/internal/common/errors"
)

// PathSeparator joins instance path segments in reports.
const PathSeparator = " -> "

// Violation is one schema violation found in a document.
type Violation struct {
	Keyword     string
	Message     string
	Path        string
	Description string
}

// ValidationResult mirrors gojsonschema's result with our violation type.
type ValidationResult struct {
	Valid      bool
	Violations []Violation
}

// First returns the violation reported to the user, or nil when valid.
func (r *ValidationResult) First() *Violation {
	if r == nil || len(r.Violations) == 0 {
		return nil
	}
	return &r.Violations[0]
}

// LoadDocument reads path and decodes it as a single JSON value. Numbers are
// kept as json.Number.
func LoadDocument(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewFileNotFoundError(path, err)
		}
		return nil, apperrors.NewFileReadFailedError(path, err)
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, apperrors.NewParseError(path, err)
	}
	return doc, nil
}

// DecodeDocument decodes exactly one JSON value from data, which must be
// valid UTF-8.
func DecodeDocument(data []byte) (interface{}, error) {
	if !utf8.Valid(data) {
		return nil, errors.New("document is not valid UTF-8")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return doc, nil
}

// CompileSchema compiles a decoded schema document. path is only used for
// error reporting.
func CompileSchema(path string, doc interface{}) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, apperrors.NewSchemaInvalidError(path, err)
	}
	return schema, nil
}

// MustCompileBytes compiles a schema shipped with the binary.
func MustCompileBytes(raw []byte) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("embedded schema does not compile: %v", err))
	}
	return schema
}

// Check validates doc against schema. An error is returned only when the
// validator itself cannot run; violations are part of the result.
func Check(schema *gojsonschema.Schema, doc interface{}) (*ValidationResult, error) {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Violations = append(out.Violations, Violation{
			Keyword:     desc.Type(),
			Message:     Reason(desc),
			Path:        InstancePath(desc.Context()),
			Description: desc.String(),
		})
	}
	return out, nil
}

// InstancePath renders the location of the offending element, relative to
// the document root. The root itself renders as an empty string.
func InstancePath(ctx *gojsonschema.JsonContext) string {
	if ctx == nil {
		return ""
	}
	path := strings.TrimPrefix(ctx.String(PathSeparator), gojsonschema.STRING_CONTEXT_ROOT)
	return strings.TrimPrefix(path, PathSeparator)
}

// Reason phrases required, type and additionalProperties violations in the
// conventional jsonschema wording. Anything else uses the library description.
func Reason(desc gojsonschema.ResultError) string {
	details := desc.Details()
	switch desc.Type() {
	case "required":
		if prop, ok := details["property"]; ok {
			return fmt.Sprintf("%s is a required property", reprValue(fmt.Sprint(prop)))
		}
	case "invalid_type":
		if expected, ok := details["expected"].(string); ok {
			return fmt.Sprintf("%s is not of type %s", reprValue(desc.Value()), quoteTypes(expected))
		}
	case "additional_property_not_allowed":
		if prop, ok := details["property"]; ok {
			return fmt.Sprintf("Additional properties are not allowed (%s was unexpected)", reprValue(fmt.Sprint(prop)))
		}
	}
	return desc.Description()
}

// quoteTypes turns "string" into 'string' and "[string,null]" into
// 'string', 'null'.
func quoteTypes(expected string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(expected, "["), "]")
	parts := strings.Split(trimmed, ",")
	for i, p := range parts {
		parts[i] = "'" + strings.TrimSpace(p) + "'"
	}
	return strings.Join(parts, ", ")
}

func reprValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		if t {
			return "True"
		}
		return "False"
	case string:
		if strings.Contains(t, "'") && !strings.Contains(t, `"`) {
			return `"` + t + `"`
		}
		return "'" + strings.ReplaceAll(t, "'", `\'`) + "'"
	case json.Number:
		return t.String()
	case []interface{}:
		items := make([]string, len(t))
		for i, item := range t {
			items[i] = reprValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, len(keys))
		for i, k := range keys {
			items[i] = reprValue(k) + ": " + reprValue(t[k])
		}
		return "{" + strings.Join(items, ", ") + "}"
	default:
		return fmt.Sprint(t)
	}
}
