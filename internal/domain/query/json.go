package query

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/okian/scout/internal/domain/attribute"
)

// Wire shape: a group is {"op":"AND|OR","rules":[...]}, a leaf rule is
// {"type":"numeric"|"string","field","operator","value","value2"?,
// "caseSensitive"?}. Filter presets persist exactly this shape, so both
// directions must round-trip through plain JSON.

type groupDoc struct {
	Op    Op                `json:"op"`
	Rules []json.RawMessage `json:"rules"`
}

type numericRuleDoc struct {
	Type     string        `json:"type"`
	Field    attribute.Key `json:"field"`
	Operator NumericOp     `json:"operator"`
	Value    float64       `json:"value"`
	Value2   *float64      `json:"value2,omitempty"`
}

type stringRuleDoc struct {
	Type          string          `json:"type"`
	Field         attribute.Key   `json:"field"`
	Operator      StringOp        `json:"operator"`
	Value         json.RawMessage `json:"value"`
	CaseSensitive bool            `json:"caseSensitive,omitempty"`
}

// nodeProbe distinguishes nested groups from leaf rules.
type nodeProbe struct {
	Op   *Op    `json:"op"`
	Type string `json:"type"`
}

// UnmarshalJSON decodes a group document, recursing into nested groups.
func (g *Group) UnmarshalJSON(data []byte) error {
	var doc groupDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeQuery, err)
	}

	g.Op = doc.Op
	g.Rules = make([]Node, 0, len(doc.Rules))
	for _, raw := range doc.Rules {
		node, err := decodeNode(raw)
		if err != nil {
			return err
		}
		g.Rules = append(g.Rules, node)
	}
	return nil
}

func decodeNode(raw json.RawMessage) (Node, error) {
	var probe nodeProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeQuery, err)
	}

	if probe.Op != nil {
		child := &Group{}
		if err := child.UnmarshalJSON(raw); err != nil {
			return nil, err
		}
		return child, nil
	}

	switch probe.Type {
	case "numeric":
		var doc numericRuleDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeQuery, err)
		}
		return NumericRule{
			Field:    doc.Field,
			Operator: doc.Operator,
			Value:    doc.Value,
			Value2:   doc.Value2,
		}, nil
	case "string":
		var doc stringRuleDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeQuery, err)
		}
		rule := StringRule{
			Field:         doc.Field,
			Operator:      doc.Operator,
			CaseSensitive: doc.CaseSensitive,
		}
		value, values, err := decodeStringValue(doc.Value)
		if err != nil {
			return nil, err
		}
		rule.Value = value
		rule.Values = values
		return rule, nil
	default:
		return nil, fmt.Errorf("%w: unknown rule type %q", ErrDecodeQuery, probe.Type)
	}
}

// decodeStringValue accepts a scalar or a list. List elements are coerced to
// strings the way the wire format writes them.
func decodeStringValue(raw json.RawMessage) (string, []string, error) {
	if len(raw) == 0 {
		return "", nil, nil
	}

	var scalar string
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return scalar, nil, nil
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", nil, fmt.Errorf("%w: string rule value must be a string or list", ErrDecodeQuery)
	}
	values := make([]string, len(list))
	for i, item := range list {
		switch v := item.(type) {
		case string:
			values[i] = v
		case float64:
			values[i] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			values[i] = strconv.FormatBool(v)
		default:
			values[i] = fmt.Sprint(v)
		}
	}
	return "", values, nil
}

// MarshalJSON encodes the group back to the wire shape.
func (g *Group) MarshalJSON() ([]byte, error) {
	doc := struct {
		Op    Op     `json:"op"`
		Rules []Node `json:"rules"`
	}{Op: g.Op, Rules: g.Rules}
	if doc.Rules == nil {
		doc.Rules = []Node{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode query group: %w", err)
	}
	return out, nil
}

// MarshalJSON tags the rule with its wire type.
func (r NumericRule) MarshalJSON() ([]byte, error) {
	out, err := json.Marshal(numericRuleDoc{
		Type:     "numeric",
		Field:    r.Field,
		Operator: r.Operator,
		Value:    r.Value,
		Value2:   r.Value2,
	})
	if err != nil {
		return nil, fmt.Errorf("encode numeric rule: %w", err)
	}
	return out, nil
}

// MarshalJSON tags the rule with its wire type, emitting a list value when
// the rule is a membership test.
func (r StringRule) MarshalJSON() ([]byte, error) {
	var value any = r.Value
	if r.Values != nil {
		value = r.Values
	}
	rawValue, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode string rule value: %w", err)
	}
	out, err := json.Marshal(stringRuleDoc{
		Type:          "string",
		Field:         r.Field,
		Operator:      r.Operator,
		Value:         rawValue,
		CaseSensitive: r.CaseSensitive,
	})
	if err != nil {
		return nil, fmt.Errorf("encode string rule: %w", err)
	}
	return out, nil
}
