package dto

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joy-dx/presetreq/utils"
	"gopkg.in/yaml.v3"
)

var ErrInvalidStatusRule = errors.New("invalid status rule")

var statusPattern = regexp.MustCompile(`(?i)^(all|!?[0-9x]{3})$`)

type statusExpr struct {
	// code exact match when pattern is empty
	code    int
	pattern string
}

// StatusRule decides whether a named callback fires for a response code.
// It holds one or more expressions and matches when any of them does.
type StatusRule struct {
	exprs []statusExpr
}

// ParseStatusRule accepts an int, a string ("all", "4xx", "!200"), another
// StatusRule, or a slice of those.
func ParseStatusRule(v any) (StatusRule, error) {
	var rule StatusRule
	if err := rule.add(v); err != nil {
		return StatusRule{}, err
	}
	if len(rule.exprs) == 0 {
		return StatusRule{}, fmt.Errorf("%w: empty rule", ErrInvalidStatusRule)
	}
	return rule, nil
}

// MustStatus builds a rule from one or more expressions and panics on invalid input.
func MustStatus(v ...any) StatusRule {
	var in any = v
	if len(v) == 1 {
		in = v[0]
	}
	rule, err := ParseStatusRule(in)
	if err != nil {
		panic(err)
	}
	return rule
}

func (r *StatusRule) add(v any) error {
	switch t := v.(type) {
	case StatusRule:
		r.exprs = append(r.exprs, t.exprs...)
	case int:
		r.exprs = append(r.exprs, statusExpr{code: t})
	case string:
		s := strings.TrimSpace(t)
		if !statusPattern.MatchString(s) {
			return fmt.Errorf("%w: %q", ErrInvalidStatusRule, t)
		}
		r.exprs = append(r.exprs, statusExpr{pattern: strings.ToLower(s)})
	case []int:
		for _, c := range t {
			r.exprs = append(r.exprs, statusExpr{code: c})
		}
	case []string:
		for _, s := range t {
			if err := r.add(s); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range t {
			if err := r.add(item); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidStatusRule, v)
	}
	return nil
}

// Match reports whether code satisfies any expression of the rule.
func (r StatusRule) Match(code int) bool {
	for _, e := range r.exprs {
		if e.pattern == "" {
			if e.code == code {
				return true
			}
			continue
		}
		if utils.MatchStatus(e.pattern, code) {
			return true
		}
	}
	return false
}

func (r StatusRule) IsZero() bool {
	return len(r.exprs) == 0
}

func (r StatusRule) String() string {
	parts := make([]string, 0, len(r.exprs))
	for _, e := range r.exprs {
		if e.pattern == "" {
			parts = append(parts, strconv.Itoa(e.code))
		} else {
			parts = append(parts, e.pattern)
		}
	}
	return strings.Join(parts, ",")
}

// UnmarshalYAML reads either a scalar or a sequence of scalars. Scalars that
// parse as integers are exact codes, everything else is a pattern.
func (r *StatusRule) UnmarshalYAML(node *yaml.Node) error {
	var items []*yaml.Node
	switch node.Kind {
	case yaml.ScalarNode:
		items = []*yaml.Node{node}
	case yaml.SequenceNode:
		items = node.Content
	default:
		return fmt.Errorf("%w: line %d: expected scalar or sequence", ErrInvalidStatusRule, node.Line)
	}

	var parsed StatusRule
	for _, item := range items {
		if item.Kind != yaml.ScalarNode {
			return fmt.Errorf("%w: line %d: nested value", ErrInvalidStatusRule, item.Line)
		}
		var v any = item.Value
		if item.Tag == "!!int" {
			code, err := strconv.Atoi(item.Value)
			if err != nil {
				return fmt.Errorf("%w: line %d: %v", ErrInvalidStatusRule, item.Line, err)
			}
			v = code
		}
		if err := parsed.add(v); err != nil {
			return err
		}
	}
	if len(parsed.exprs) == 0 {
		return fmt.Errorf("%w: line %d: empty rule", ErrInvalidStatusRule, node.Line)
	}
	*r = parsed
	return nil
}
