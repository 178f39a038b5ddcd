// pkg/registry/schema.go
package registry

// LookupRegistry holds the fixed pools the personnel generator draws from.
// A loaded registry is shared read-only; nothing mutates it after Load.
type LookupRegistry struct {
	Version        string              `json:"version"`
	Names          []string            `json:"names"`
	Surnames       []string            `json:"surnames"`
	Departments    []string            `json:"departments"`
	RoleTitles     map[string][]string `json:"roleTitles"`
	RoleCodes      map[string]string   `json:"roleCodes"`
	Tags           []string            `json:"tags"`
	Certifications []string            `json:"certifications"`
}

// Department codes with conditional data enrichment.
const (
	DepartmentEngineering = "ENG"
	DepartmentManagement  = "MGT"
)

// HasDepartment reports whether code is one of the registry departments.
func (r *LookupRegistry) HasDepartment(code string) bool {
	for _, d := range r.Departments {
		if d == code {
			return true
		}
	}
	return false
}
