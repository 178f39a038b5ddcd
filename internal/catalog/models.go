// internal/catalog/models.go
package catalog

import "datagrid-tools/internal/common/validation"

// Result is the outcome of validating one catalog.
type Result struct {
	Catalog   string
	Valid     bool
	Violation *validation.Violation
	Details   []validation.Violation
}

// Report collects the results of a batch, in input order.
type Report struct {
	Schema  string
	Results []Result
}

// Failed returns the number of invalid catalogs.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Valid {
			n++
		}
	}
	return n
}

// AllValid reports whether every catalog passed.
func (r *Report) AllValid() bool {
	return r.Failed() == 0
}
