// Package validate checks decoded JSON request bodies against a list of
// field rules and returns typed, normalized values.
//
// A body is the map produced by decoding a JSON object. Each Rule names a
// field, its Kind and whether it is required. Validate walks the rules in
// order and stops at the first unmet requirement, so callers control which
// message a client sees first.
//
// Absence is broad: a missing key, JSON null, an empty (or all-whitespace)
// string and an ID of 0 all count as absent. A required field that is
// absent yields the caller's combined "missing" message; an optional one is
// simply left out of the result, which is what partial updates rely on.
// A rule built with RejectBlank only treats an omitted key as absent.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/forgo/clubhub/api/internal/model"
)

// Messages for type and format failures.
const (
	MsgInvalidRole = "Invalid role. Must be Admin, Leader, or Member"
	MsgInvalidDate = "Invalid date format"
)

// Kind is the expected shape of a field.
type Kind int

const (
	// Text is a string, trimmed before use.
	Text Kind = iota
	// Secret is a string used as given (passwords).
	Secret
	// ID is a positive integer, as a JSON number or a digit string.
	ID
	// Role is one of Admin, Leader or Member.
	Role
	// Date is an ISO-8601 date or date-time, kept verbatim.
	Date
)

// Rule describes one field of a request body.
type Rule struct {
	Field    string
	Kind     Kind
	Required bool
	// Invalid replaces the default format message for Role and Date.
	Invalid string
	// BlankInvalid makes a key that is present but null or blank a format
	// failure instead of an absent field.
	BlankInvalid bool
}

// Required returns a rule for a field that must be present.
func Required(field string, kind Kind) Rule {
	return Rule{Field: field, Kind: kind, Required: true}
}

// Optional returns a rule for a field that may be absent.
func Optional(field string, kind Kind) Rule {
	return Rule{Field: field, Kind: kind}
}

// WithMessage returns a copy of r that reports msg on a format failure.
func (r Rule) WithMessage(msg string) Rule {
	r.Invalid = msg
	return r
}

// RejectBlank returns a copy of r that fails format checks when the key is
// sent with a null or blank value.
func (r Rule) RejectBlank() Rule {
	r.BlankInvalid = true
	return r
}

// Error reports the first unmet requirement.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Values holds the validated fields that were present.
type Values struct {
	strings map[string]string
	ids     map[string]int64
}

// Has reports whether field was present and valid.
func (v Values) Has(field string) bool {
	if _, ok := v.strings[field]; ok {
		return true
	}
	_, ok := v.ids[field]
	return ok
}

// Empty reports whether no field was present.
func (v Values) Empty() bool {
	return len(v.strings) == 0 && len(v.ids) == 0
}

// String returns a Text, Secret, Role or Date value, or "".
func (v Values) String(field string) string {
	return v.strings[field]
}

// StringPtr returns a pointer to the value, or nil when absent.
func (v Values) StringPtr(field string) *string {
	s, ok := v.strings[field]
	if !ok {
		return nil
	}
	return &s
}

// ID returns an ID value, or 0.
func (v Values) ID(field string) int64 {
	return v.ids[field]
}

// IDPtr returns a pointer to the ID, or nil when absent.
func (v Values) IDPtr(field string) *int64 {
	id, ok := v.ids[field]
	if !ok {
		return nil
	}
	return &id
}

// RolePtr returns the role, or nil when absent.
func (v Values) RolePtr(field string) *model.UserRole {
	s, ok := v.strings[field]
	if !ok {
		return nil
	}
	role := model.UserRole(s)
	return &role
}

// Validate checks body against rules in order. missing is the message
// reported when a required field is absent.
func Validate(body map[string]any, missing string, rules ...Rule) (Values, error) {
	vals := Values{strings: map[string]string{}, ids: map[string]int64{}}

	for _, rule := range rules {
		raw := body[rule.Field]

		switch rule.Kind {
		case ID:
			id, present, err := parseID(raw)
			if err != nil {
				return Values{}, &Error{Field: rule.Field, Message: fmt.Sprintf("%s must be a positive integer", rule.Field)}
			}
			if !present {
				if rule.Required {
					return Values{}, &Error{Field: rule.Field, Message: missing}
				}
				continue
			}
			vals.ids[rule.Field] = id

		default:
			s, present, err := parseString(raw, rule.Kind != Secret)
			if err != nil {
				return Values{}, &Error{Field: rule.Field, Message: fmt.Sprintf("%s must be a string", rule.Field)}
			}
			if !present {
				if _, sent := body[rule.Field]; sent && rule.BlankInvalid {
					return Values{}, formatError(rule)
				}
				if rule.Required {
					return Values{}, &Error{Field: rule.Field, Message: missing}
				}
				continue
			}
			if err := checkFormat(rule, s); err != nil {
				return Values{}, err
			}
			vals.strings[rule.Field] = s
		}
	}

	return vals, nil
}

func checkFormat(rule Rule, s string) error {
	switch rule.Kind {
	case Role:
		if !model.UserRole(s).IsValid() {
			return formatError(rule)
		}
	case Date:
		if _, err := model.ParseEventDate(s); err != nil {
			return formatError(rule)
		}
	}
	return nil
}

func formatError(rule Rule) *Error {
	msg := rule.Invalid
	if msg == "" {
		switch rule.Kind {
		case Role:
			msg = MsgInvalidRole
		case Date:
			msg = MsgInvalidDate
		default:
			msg = fmt.Sprintf("%s must not be blank", rule.Field)
		}
	}
	return &Error{Field: rule.Field, Message: msg}
}

func parseString(raw any, trim bool) (string, bool, error) {
	if raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, fmt.Errorf("not a string: %T", raw)
	}
	if strings.TrimSpace(s) == "" {
		return "", false, nil
	}
	if trim {
		s = strings.TrimSpace(s)
	}
	return s, true, nil
}

// parseID accepts float64 (encoding/json default), json.Number and digit
// strings. Zero counts as absent.
func parseID(raw any) (int64, bool, error) {
	var id int64

	switch v := raw.(type) {
	case nil:
		return 0, false, nil
	case float64:
		if v != math.Trunc(v) || v < 0 || v >= math.MaxInt64 {
			return 0, false, fmt.Errorf("invalid id: %v", v)
		}
		id = int64(v)
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, false, err
		}
		id = n
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false, err
		}
		id = n
	case int:
		id = int64(v)
	case int64:
		id = v
	default:
		return 0, false, fmt.Errorf("invalid id type: %T", raw)
	}

	if id < 0 {
		return 0, false, fmt.Errorf("invalid id: %d", id)
	}
	if id == 0 {
		return 0, false, nil
	}
	return id, true, nil
}
