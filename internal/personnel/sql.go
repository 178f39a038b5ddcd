// internal/personnel/sql.go
package personnel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

const conflictClause = "ON CONFLICT (id) DO NOTHING;"

var ErrNoRecords = errors.New("no records to render")

// Renderer turns records into one multi-row INSERT statement.
//
// In legacy mode string literals are wrapped in single quotes verbatim,
// which breaks on values containing a quote. EscapeLiterals switches to
// PostgreSQL quoting for literals and the table identifier.
type Renderer struct {
	table  string
	escape bool
}

func NewRenderer(cfg *Config) *Renderer {
	return &Renderer{table: cfg.Table, escape: cfg.EscapeLiterals}
}

// Statement renders the full INSERT including the trailing newline.
func (r *Renderer) Statement(mode Mode, records []Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}

	rows := make([]string, 0, len(records))
	for _, rec := range records {
		row, err := r.row(mode, rec)
		if err != nil {
			return "", err
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString(r.header(mode))
	b.WriteByte('\n')
	b.WriteString(strings.Join(rows, ",\n"))
	b.WriteByte('\n')
	b.WriteString(conflictClause)
	b.WriteByte('\n')
	return b.String(), nil
}

func (r *Renderer) header(mode Mode) string {
	table := r.table
	if r.escape {
		table = pq.QuoteIdentifier(table)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES", table, strings.Join(mode.Columns(), ", "))
}

func (r *Renderer) row(mode Mode, rec Record) (string, error) {
	data, err := encodeData(rec.Data)
	if err != nil {
		return "", fmt.Errorf("encode data for %s: %w", rec.Name, err)
	}

	fields := []string{
		r.literal(rec.Name),
		r.literal(rec.Email),
		r.literal(rec.Department),
	}
	if mode == ModeExtended {
		fields = append(fields,
			r.literal(rec.Role),
			strconv.Itoa(rec.Salary),
			strconv.Itoa(rec.Bonus),
			strconv.Itoa(rec.Rating),
			strconv.Itoa(rec.Tenure),
		)
	} else {
		fields = append(fields, strconv.Itoa(rec.Salary))
	}
	fields = append(fields,
		strconv.FormatBool(rec.IsValid),
		strconv.FormatBool(rec.IsActive),
		r.literal(data),
	)

	return "(" + strings.Join(fields, ", ") + ")", nil
}

func (r *Renderer) literal(s string) string {
	if r.escape {
		return pq.QuoteLiteral(s)
	}
	return "'" + s + "'"
}

// encodeData serializes data as compact JSON without HTML escaping.
func encodeData(d Data) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
