package projection

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Response field names as sent by the classification service.
const (
	FieldIsSuccess  = "is_success"
	FieldUserID     = "user_id"
	FieldEmail      = "email"
	FieldRollNumber = "roll_number"
)

// ServiceResponse is the decoded body returned by the classification service.
// Fields are kept untyped so that a missing or oddly typed field renders as
// best it can instead of failing the decode.
type ServiceResponse struct {
	fields map[string]any
}

// DecodeServiceResponse parses body, which must be a JSON object.
func DecodeServiceResponse(body []byte) (ServiceResponse, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return ServiceResponse{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return ServiceResponse{}, err
	}
	if fields == nil {
		return ServiceResponse{}, errors.New("response body is null")
	}
	return NewServiceResponse(fields), nil
}

// NewServiceResponse wraps fields. The map is copied at the top level.
func NewServiceResponse(fields map[string]any) ServiceResponse {
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[key] = value
	}
	return ServiceResponse{fields: out}
}

// Field returns the raw value stored under name.
func (r ServiceResponse) Field(name string) (any, bool) {
	value, ok := r.fields[name]
	return value, ok
}

// IsSuccess reports whether is_success is the boolean true.
func (r ServiceResponse) IsSuccess() bool {
	value, _ := r.fields[FieldIsSuccess].(bool)
	return value
}

// UserID, Email and RollNumber render their fields for display.
func (r ServiceResponse) UserID() string     { return r.render(FieldUserID) }
func (r ServiceResponse) Email() string      { return r.render(FieldEmail) }
func (r ServiceResponse) RollNumber() string { return r.render(FieldRollNumber) }

// Empty reports whether the response carried no fields at all.
func (r ServiceResponse) Empty() bool {
	return len(r.fields) == 0
}

func (r ServiceResponse) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.fields)
}

func (r *ServiceResponse) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeServiceResponse(data)
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}

func (r ServiceResponse) render(name string) string {
	value, _ := r.Field(name)
	return renderValue(value)
}
