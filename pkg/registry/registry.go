// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	apperrors "datagrid-tools/internal/common/errors"
	"datagrid-tools/internal/common/validation"
)

//go:embed default.json
var defaultRegistry []byte

//go:embed registry.schema.json
var registrySchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
)

func schema() *gojsonschema.Schema {
	schemaOnce.Do(func() {
		compiledSchema = validation.MustCompileBytes(registrySchema)
	})
	return compiledSchema
}

// LoadRegistry reads a registry override from disk.
func LoadRegistry(path string) (*LookupRegistry, error) {
	doc, err := validation.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

// Parse decodes and checks a registry document.
func Parse(data []byte) (*LookupRegistry, error) {
	doc, err := validation.DecodeDocument(data)
	if err != nil {
		return nil, apperrors.NewParseError("<registry>", err)
	}
	return fromDocument(doc)
}

// Default returns the registry shipped with the binary.
func Default() *LookupRegistry {
	reg, err := Parse(defaultRegistry)
	if err != nil {
		panic(fmt.Sprintf("embedded registry is invalid: %v", err))
	}
	return reg
}

func fromDocument(doc interface{}) (*LookupRegistry, error) {
	res, err := validation.Check(schema(), doc)
	if err != nil {
		return nil, apperrors.NewRegistryInvalidError(err.Error())
	}
	if !res.Valid {
		v := res.First()
		return nil, apperrors.NewRegistryInvalidError(fmt.Sprintf("%s (path: %s)", v.Message, v.Path))
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.NewRegistryInvalidError(err.Error())
	}
	var reg LookupRegistry
	if err := json.Unmarshal(raw, &reg); err != nil {
		return nil, apperrors.NewRegistryInvalidError(err.Error())
	}

	if err := reg.validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// validate checks what the schema cannot express: every department needs
// role titles and a role code, and no role entry may name an unknown
// department.
func (r *LookupRegistry) validate() error {
	var problems []string
	for _, d := range r.Departments {
		if len(r.RoleTitles[d]) == 0 {
			problems = append(problems, fmt.Sprintf("department %s has no role titles", d))
		}
		if r.RoleCodes[d] == "" {
			problems = append(problems, fmt.Sprintf("department %s has no role code", d))
		}
	}
	for d := range r.RoleTitles {
		if !r.HasDepartment(d) {
			problems = append(problems, fmt.Sprintf("roleTitles names unknown department %s", d))
		}
	}
	for d := range r.RoleCodes {
		if !r.HasDepartment(d) {
			problems = append(problems, fmt.Sprintf("roleCodes names unknown department %s", d))
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return apperrors.NewRegistryInvalidError(strings.Join(problems, "; "))
	}
	return nil
}
