// Package role provides the immutable catalog of tactical roles and their
// attribute weight vectors.
//
// The catalog is loaded once from the embedded data file and never mutated
// afterwards; consumers only select roles for scoring. Iteration order is the
// file order, which is what makes best-role tie-breaking stable.
package role

import (
	"encoding/json"
	"fmt"

	"github.com/okian/scout/internal/domain/attribute"
)

// Role is a tactical archetype: a stable code, a display name, and a sparse
// non-negative weight per attribute key. Attributes absent from Weights (or
// weighted zero) do not contribute to scoring.
type Role struct {
	Code    string
	Name    string
	Weights map[attribute.Key]float64
}

// UnmarshalJSON decodes the flat catalog record shape, where the weight
// vector shares the object with the Role / RoleCode fields:
//
//	{"Role": "Advanced Forward Attack", "RoleCode": "afa", "Fin": 5, "Pac": 3}
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeCatalog, err)
	}

	r.Weights = make(map[attribute.Key]float64, len(raw))
	for key, val := range raw {
		switch key {
		case "Role":
			if err := json.Unmarshal(val, &r.Name); err != nil {
				return fmt.Errorf("%w: Role: %w", ErrDecodeCatalog, err)
			}
		case "RoleCode":
			if err := json.Unmarshal(val, &r.Code); err != nil {
				return fmt.Errorf("%w: RoleCode: %w", ErrDecodeCatalog, err)
			}
		default:
			var weight float64
			if err := json.Unmarshal(val, &weight); err != nil {
				// Non-numeric stray fields are ignored rather than failing
				// the whole catalog.
				continue
			}
			if weight < 0 {
				weight = 0
			}
			r.Weights[attribute.Key(key)] = weight
		}
	}
	return nil
}

// MarshalJSON re-emits the flat catalog record shape.
func (r Role) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Weights)+2)
	flat["Role"] = r.Name
	flat["RoleCode"] = r.Code
	for key, weight := range r.Weights {
		flat[string(key)] = weight
	}
	out, err := json.Marshal(flat)
	if err != nil {
		return nil, fmt.Errorf("encode role %s: %w", r.Code, err)
	}
	return out, nil
}

// Catalog is an ordered, read-only collection of roles.
type Catalog struct {
	roles  []Role
	byCode map[string]int
}

// NewCatalog decodes a catalog from raw JSON data (an array of flat role
// records). Order in the data is preserved; a duplicated code keeps the
// first occurrence.
func NewCatalog(data []byte) (*Catalog, error) {
	var roles []Role
	if err := json.Unmarshal(data, &roles); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeCatalog, err)
	}
	return FromRoles(roles), nil
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return NewCatalog(rolesData)
}

// FromRoles builds a catalog from an already-decoded role slice, preserving
// its order. Used by compute backends to rebuild their lookup from a job
// payload.
func FromRoles(roles []Role) *Catalog {
	c := &Catalog{
		roles:  make([]Role, 0, len(roles)),
		byCode: make(map[string]int, len(roles)),
	}
	for _, r := range roles {
		if _, exists := c.byCode[r.Code]; exists {
			continue
		}
		c.byCode[r.Code] = len(c.roles)
		c.roles = append(c.roles, r)
	}
	return c
}

// Get returns the role for code, reporting whether it exists.
func (c *Catalog) Get(code string) (Role, bool) {
	idx, ok := c.byCode[code]
	if !ok {
		return Role{}, false
	}
	return c.roles[idx], true
}

// Roles returns the catalog entries in catalog order. The returned slice is
// a copy; the weight maps are shared and must not be mutated.
func (c *Catalog) Roles() []Role {
	out := make([]Role, len(c.roles))
	copy(out, c.roles)
	return out
}

// Select returns the subset of roles matching codes, in the order given.
// Unknown codes are skipped.
func (c *Catalog) Select(codes []string) []Role {
	out := make([]Role, 0, len(codes))
	for _, code := range codes {
		if r, ok := c.Get(code); ok {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of roles in the catalog.
func (c *Catalog) Len() int {
	return len(c.roles)
}
