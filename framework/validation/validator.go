// Package validation validates flat request input against rule strings.
// It is the collaborator that reads rulesets off the annotation store:
// the scaffold attaches a Rules value under a handler's type identity at
// bootstrap, and the dispatch pipeline calls ForIdentity before the
// handler runs. The container core never interprets the ruleset.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/km-arc/go-nest/framework/annotations"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors holds validation errors per field.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"email": "required|email", "age": "required|numeric|gte:18"}
type Rules map[string]string

// ── Validator ────────────────────────────────────────────────────────────────

// Validator validates a flat map of input values against Rules.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
}

// Make creates a Validator for the given data and rules.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{data: data, rules: rules, errors: &Errors{}}
}

// ForIdentity creates a Validator from the ruleset attached to a type
// identity in the annotation store. ok is false when the identity
// carries no ruleset, in which case the input needs no validation.
func ForIdentity(store *annotations.Store, identity string, data map[string]string) (*Validator, bool) {
	rules, ok := annotations.LookupAs[Rules](store, identity)
	if !ok {
		return nil, false
	}
	return Make(data, rules), true
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	v.validate()
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) validate() {
	for field, ruleStr := range v.rules {
		value := v.data[field]

		for _, rule := range strings.Split(ruleStr, "|") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}

			// min:3 → name=min, param=3
			name, param, _ := strings.Cut(rule, ":")

			if !v.applyRule(field, value, name, param) {
				break // bail on first failure per field
			}
		}
	}
}

// applyRule returns true if the rule passes.
func (v *Validator) applyRule(field, value, rule, param string) bool {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			v.errors.add(field, fmt.Sprintf("The %s field is required.", field))
			return false
		}

	case "string":
		// Flat input is already a string; presence is all there is to check.

	case "numeric":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be a number.", field))
			return false
		}

	case "integer":
		if _, err := strconv.Atoi(value); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be an integer.", field))
			return false
		}

	case "boolean":
		switch strings.ToLower(value) {
		case "true", "false", "1", "0":
		default:
			v.errors.add(field, fmt.Sprintf("The %s field must be true or false.", field))
			return false
		}

	case "email":
		if _, err := mail.ParseAddress(value); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be a valid email address.", field))
			return false
		}

	case "min":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) < n {
			v.errors.add(field, fmt.Sprintf("The %s must be at least %d characters.", field, n))
			return false
		}

	case "max":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			v.errors.add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, n))
			return false
		}

	case "in":
		for _, allowed := range strings.Split(param, ",") {
			if strings.TrimSpace(allowed) == value {
				return true
			}
		}
		v.errors.add(field, fmt.Sprintf("The selected %s is invalid.", field))
		return false

	case "gte":
		f, _ := strconv.ParseFloat(value, 64)
		t, _ := strconv.ParseFloat(param, 64)
		if f < t {
			v.errors.add(field, fmt.Sprintf("The %s must be greater than or equal to %s.", field, param))
			return false
		}

	case "lte":
		f, _ := strconv.ParseFloat(value, 64)
		t, _ := strconv.ParseFloat(param, 64)
		if f > t {
			v.errors.add(field, fmt.Sprintf("The %s must be less than or equal to %s.", field, param))
			return false
		}

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(value) {
			v.errors.add(field, fmt.Sprintf("The %s format is invalid.", field))
			return false
		}

	case "sometimes":
		// Skip remaining rules when the field is absent.
		if value == "" {
			return false
		}
	}

	return true
}
