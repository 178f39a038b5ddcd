// internal/personnel/models.go
package personnel

import "fmt"

// Mode selects the column layout of the emitted INSERT.
type Mode string

const (
	// ModeBasic keeps the role title inside data and has no compensation
	// extras.
	ModeBasic Mode = "basic"
	// ModeExtended stores the department role code as a column and adds
	// bonus, rating and tenure.
	ModeExtended Mode = "extended"
)

var (
	basicColumns = []string{
		"name", "email", "department", "salary", "is_valid", "is_active", "data",
	}
	extendedColumns = []string{
		"name", "email", "department", "role", "salary", "bonus", "rating", "tenure", "is_valid", "is_active", "data",
	}
)

// ParseMode maps a command or config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBasic, ModeExtended:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown generator mode %q (want %s or %s)", s, ModeBasic, ModeExtended)
	}
}

// Columns returns the INSERT column list for the mode.
func (m Mode) Columns() []string {
	if m == ModeBasic {
		return append([]string(nil), basicColumns...)
	}
	return append([]string(nil), extendedColumns...)
}

// Value ranges, inclusive.
const (
	SalaryMin     = 45000
	SalaryMax     = 150000
	BonusMin      = 0
	BonusMax      = 20000
	RatingMin     = 1
	RatingMax     = 5
	TenureMin     = 1
	TenureMax     = 15
	ExperienceMin = 1
	ExperienceMax = 20

	MinTags           = 1
	MaxTags           = 4
	MinCertifications = 1
	MaxCertifications = 2

	// FlagTrueInTen is how many of ten draws set is_valid / is_active.
	FlagTrueInTen = 9
)

// Record is one generated personnel row. Bonus, Rating and Tenure are only
// drawn in ModeExtended.
type Record struct {
	Name       string
	Email      string
	Department string
	Role       string
	Salary     int
	Bonus      int
	Rating     int
	Tenure     int
	IsValid    bool
	IsActive   bool
	Data       Data
}

// Data is the JSON blob stored in the data column. Field order is the
// serialized key order.
type Data struct {
	Role           string   `json:"role,omitempty"`
	Experience     int      `json:"experience"`
	Tags           []string `json:"tags,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
}
