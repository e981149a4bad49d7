package projection

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Keys of the identity fields, always present at the head of a projection.
const (
	KeyStatus     = "status"
	KeyUserID     = FieldUserID
	KeyEmail      = FieldEmail
	KeyRollNumber = FieldRollNumber
)

const (
	StatusSuccessful = "Successful"
	StatusFailed     = "Failed"
)

const listSeparator = ", "

// Field is one rendered label/value pair.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Projection is the ordered list of fields shown for a response.
type Projection []Field

// Get finds a field by key.
func (p Projection) Get(key string) (Field, bool) {
	for _, field := range p {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// Labels lists the labels in order.
func (p Projection) Labels() []string {
	out := make([]string, len(p))
	for idx, field := range p {
		out[idx] = field.Label
	}
	return out
}

// Project renders resp for display. Status, User ID, Email and Roll Number
// always come first; the filtered fields follow in declaration order.
func Project(resp ServiceResponse, filters FilterSet) Projection {
	status := StatusFailed
	if resp.IsSuccess() {
		status = StatusSuccessful
	}

	out := make(Projection, 0, 4+len(declared))
	out = append(out,
		Field{Key: KeyStatus, Label: "Status", Value: status},
		Field{Key: KeyUserID, Label: "User ID", Value: resp.UserID()},
		Field{Key: KeyEmail, Label: "Email", Value: resp.Email()},
		Field{Key: KeyRollNumber, Label: "Roll Number", Value: resp.RollNumber()},
	)

	for _, key := range filters.Keys() {
		value, _ := resp.Field(string(key))
		out = append(out, Field{
			Key:   string(key),
			Label: key.Label(),
			Value: renderValue(value),
		})
	}
	return out
}

// renderValue joins sequences with ", " and prints anything else as-is.
func renderValue(value any) string {
	switch typed := value.(type) {
	case []any:
		parts := make([]string, len(typed))
		for idx, item := range typed {
			parts[idx] = renderScalar(item)
		}
		return strings.Join(parts, listSeparator)
	case []string:
		return strings.Join(typed, listSeparator)
	default:
		return renderScalar(value)
	}
}

func renderScalar(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case fmt.Stringer:
		return typed.String()
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}
		return string(encoded)
	}
}
