// Package scoring computes role-fit scores from player attributes.
package scoring

import (
	"github.com/okian/scout/internal/domain/attribute"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/role"
)

// Default scoring configuration constants.
const (
	// defaultCeiling is the attribute value treated as a perfect 1.0 after
	// normalization; values above it are clamped.
	defaultCeiling = 20
	maxScoreValue  = 100
)

// Engine scores players against the roles of one catalog.
//
// A score is the weighted average of the player's normalized attribute
// values over the role's weight vector, expressed as a percentage. Missing
// attributes read as zero and pull the score down; an unknown role code
// scores zero. Both are deliberate degradation policies, not errors: one bad
// record must never abort a batch.
type Engine struct {
	catalog *role.Catalog
	ceiling float64
}

// NewEngine creates an engine over catalog with configuration options.
func NewEngine(catalog *role.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		ceiling: defaultCeiling,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Catalog returns the catalog this engine scores against.
func (e *Engine) Catalog() *role.Catalog {
	return e.catalog
}

// Score computes the fit of p for the role identified by roleCode.
// The result is in [0, 100]; unknown codes and all-zero weight vectors
// score 0.
func (e *Engine) Score(p *model.Player, roleCode string) float64 {
	r, ok := e.catalog.Get(roleCode)
	if !ok {
		return 0
	}
	return e.ScoreRole(p, r)
}

// ScoreRole computes the fit of p for r.
func (e *Engine) ScoreRole(p *model.Player, r role.Role) float64 {
	var weightedSum, weightSum float64

	for attr, weight := range r.Weights {
		if weight <= 0 {
			continue
		}

		normalized := attribute.Numeric(p, attr) / e.ceiling
		if normalized > 1 {
			normalized = 1
		}
		if normalized < 0 {
			normalized = 0
		}

		weightedSum += normalized * weight
		weightSum += weight
	}

	if weightSum <= 0 {
		return 0
	}
	return weightedSum / weightSum * maxScoreValue
}

// BestRole scores p against every role in the catalog and returns the
// highest-scoring one. Ties keep the earlier catalog entry. Returns nil only
// for an empty catalog.
func (e *Engine) BestRole(p *model.Player) *model.RoleScore {
	var best *model.RoleScore

	for _, r := range e.catalog.Roles() {
		score := e.ScoreRole(p, r)
		if best == nil || score > best.Score {
			best = &model.RoleScore{Code: r.Code, Name: r.Name, Score: score}
		}
	}

	return best
}

// ProcessPlayer returns a copy of p with role scores for every requested
// code, the best role among the known requested codes, and the derived
// metrics attached. RoleScores holds exactly the requested codes; unknown
// codes score 0 and cannot become the best role.
func (e *Engine) ProcessPlayer(p model.Player, roleCodes []string) model.Player {
	scores := make(map[string]float64, len(roleCodes))
	var best *model.RoleScore

	for _, code := range roleCodes {
		score := e.Score(&p, code)
		scores[code] = score

		if r, ok := e.catalog.Get(code); ok {
			if best == nil || score > best.Score {
				best = &model.RoleScore{Code: code, Name: r.Name, Score: score}
			}
		}
	}

	p.Speed = attribute.DerivedSpeed(&p)
	p.WorkRate = attribute.DerivedWorkRate(&p)
	p.SetPieces = attribute.DerivedSetPieces(&p)
	p.RoleScores = scores
	p.BestRole = best

	return p
}
