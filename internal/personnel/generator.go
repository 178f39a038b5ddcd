// internal/personnel/generator.go
package personnel

import (
	"math/rand/v2"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"datagrid-tools/internal/common/logger"
	"datagrid-tools/pkg/registry"
)

const emailDomain = "example.com"

// Generator builds random personnel records from a lookup registry. It is
// not safe for concurrent use.
type Generator struct {
	config   *Config
	registry *registry.LookupRegistry
	rng      *rand.Rand
	lower    cases.Caser
	logger   logger.Logger
}

func NewGenerator(cfg *Config, reg *registry.LookupRegistry, log logger.Logger) *Generator {
	return &Generator{
		config:   cfg,
		registry: reg,
		rng:      newRand(cfg),
		lower:    cases.Lower(language.Und),
		logger:   log,
	}
}

func newRand(cfg *Config) *rand.Rand {
	if cfg.Seeded {
		seed := uint64(cfg.Seed)
		return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Generate returns config.Count records for mode.
func (g *Generator) Generate(mode Mode) []Record {
	records := make([]Record, 0, g.config.Count)
	for i := 0; i < g.config.Count; i++ {
		records = append(records, g.buildRecord(mode))
	}

	g.logger.Debug("personnel records generated", map[string]interface{}{
		"mode":   string(mode),
		"count":  len(records),
		"seeded": g.config.Seeded,
	})
	return records
}

func (g *Generator) buildRecord(mode Mode) Record {
	reg := g.registry

	first := g.pick(reg.Names)
	last := g.pick(reg.Surnames)
	dept := g.pick(reg.Departments)

	rec := Record{
		Name:       last + " " + first,
		Email:      g.lower.String(first) + "." + g.lower.String(last) + "@" + emailDomain,
		Department: dept,
		Salary:     g.between(SalaryMin, SalaryMax),
	}

	if mode == ModeExtended {
		rec.Bonus = g.between(BonusMin, BonusMax)
		rec.Rating = g.between(RatingMin, RatingMax)
		rec.Tenure = g.between(TenureMin, TenureMax)
	}

	rec.IsValid = g.flag()
	rec.IsActive = g.flag()

	switch mode {
	case ModeBasic:
		rec.Role = g.pick(reg.RoleTitles[dept])
		rec.Data.Role = rec.Role
	default:
		rec.Role = reg.RoleCodes[dept]
	}

	rec.Data.Experience = g.between(ExperienceMin, ExperienceMax)

	if dept == registry.DepartmentEngineering {
		rec.Data.Tags = g.sample(reg.Tags, g.between(MinTags, MaxTags))
	}
	if dept == registry.DepartmentManagement && g.rng.Float64() > 0.5 {
		rec.Data.Certifications = g.sample(reg.Certifications, g.between(MinCertifications, MaxCertifications))
	}

	return rec
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.IntN(len(pool))]
}

// between returns a uniform int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) flag() bool {
	return g.rng.IntN(10) < FlagTrueInTen
}

// sample draws k distinct elements of pool in random order.
func (g *Generator) sample(pool []string, k int) []string {
	if k > len(pool) {
		k = len(pool)
	}
	perm := g.rng.Perm(len(pool))
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = pool[perm[i]]
	}
	return out
}
