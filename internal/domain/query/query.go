// Package query evaluates declarative filter trees over player records.
//
// A filter is a Group combining leaf rules (numeric comparisons, string
// matches) with AND/OR, nested arbitrarily deep. Evaluation is pure: the
// same (player, group) pair always yields the same answer, so a tree can be
// re-run on every keystroke without memoization. Unrecognized operators pass
// permissively, favoring showing data over hiding it.
package query

import (
	"slices"
	"strings"

	"github.com/okian/scout/internal/domain/attribute"
	"github.com/okian/scout/internal/domain/model"
)

// Op combines the results of a group's child rules.
type Op string

// Group combinators.
const (
	And Op = "AND"
	Or  Op = "OR"
)

// NumericOp compares a numeric player field against a rule value.
type NumericOp string

// Numeric operators.
const (
	GreaterOrEqual NumericOp = ">="
	LessOrEqual    NumericOp = "<="
	Greater        NumericOp = ">"
	Less           NumericOp = "<"
	Equal          NumericOp = "="
	Between        NumericOp = "between"
)

// StringOp matches a string player field against a rule value.
type StringOp string

// String operators.
const (
	Contains   StringOp = "contains"
	Equals     StringOp = "equals"
	StartsWith StringOp = "startsWith"
	EndsWith   StringOp = "endsWith"
	// In splits the player's own field on commas before membership-testing
	// the needle; supports multi-valued fields like Position.
	In StringOp = "in"
)

// Node is one element of a filter tree: a Group or a leaf rule.
type Node interface {
	// Matches reports whether p passes this node.
	Matches(p *model.Player) bool
}

// Group combines child nodes with a boolean operator. Rules nest arbitrarily
// deep; the tree shape makes cycles impossible by construction.
type Group struct {
	Op    Op
	Rules []Node
}

// NumericRule compares a (possibly derived) numeric field. Value2 is only
// meaningful for Between, whose bounds may be supplied in either order.
type NumericRule struct {
	Field    attribute.Key
	Operator NumericOp
	Value    float64
	Value2   *float64
}

// StringRule matches a string field. When Values is non-nil the rule is a
// membership test of the player's value in the list, regardless of Operator.
type StringRule struct {
	Field         attribute.Key
	Operator      StringOp
	Value         string
	Values        []string
	CaseSensitive bool
}

// EvaluateGroup reports whether p passes the filter tree. A nil or empty
// group passes everything: no filter means no exclusion.
func EvaluateGroup(p *model.Player, g *Group) bool {
	if g == nil || len(g.Rules) == 0 {
		return true
	}
	return g.Matches(p)
}

// Matches implements Node. Children are evaluated eagerly, then combined.
func (g *Group) Matches(p *model.Player) bool {
	if g == nil || len(g.Rules) == 0 {
		return true
	}

	results := make([]bool, len(g.Rules))
	for i, rule := range g.Rules {
		results[i] = rule.Matches(p)
	}

	if g.Op == Or {
		return slices.Contains(results, true)
	}
	// AND, and any unrecognized combinator.
	return !slices.Contains(results, false)
}

// Matches implements Node.
func (r NumericRule) Matches(p *model.Player) bool {
	v := attribute.Numeric(p, r.Field)

	switch r.Operator {
	case GreaterOrEqual:
		return v >= r.Value
	case LessOrEqual:
		return v <= r.Value
	case Greater:
		return v > r.Value
	case Less:
		return v < r.Value
	case Equal:
		return v == r.Value
	case Between:
		second := r.Value
		if r.Value2 != nil {
			second = *r.Value2
		}
		lo, hi := min(r.Value, second), max(r.Value, second)
		return v >= lo && v <= hi
	default:
		return true
	}
}

// Matches implements Node.
func (r StringRule) Matches(p *model.Player) bool {
	hay := attribute.Text(p, r.Field)
	if !r.CaseSensitive {
		hay = strings.ToLower(hay)
	}

	if r.Values != nil {
		for _, v := range r.Values {
			if !r.CaseSensitive {
				v = strings.ToLower(v)
			}
			if v == hay {
				return true
			}
		}
		return false
	}

	needle := r.Value
	if !r.CaseSensitive {
		needle = strings.ToLower(needle)
	}

	switch r.Operator {
	case Equals:
		return hay == needle
	case Contains:
		return strings.Contains(hay, needle)
	case StartsWith:
		return strings.HasPrefix(hay, needle)
	case EndsWith:
		return strings.HasSuffix(hay, needle)
	case In:
		for _, part := range strings.Split(hay, ",") {
			if strings.TrimSpace(part) == needle {
				return true
			}
		}
		return false
	default:
		return true
	}
}
