package payload

import (
	"bytes"
	"encoding/json"
)

// DataKey is the only key a request object may carry.
const DataKey = "data"

// RequestPayload is the validated request body. Data holds the elements exactly
// as parsed; numbers are kept as json.Number so their literal text survives the
// round trip to the service.
type RequestPayload struct {
	Data []any
}

// New builds a payload from already typed values.
func New(values ...any) RequestPayload {
	data := make([]any, 0, len(values))
	data = append(data, values...)
	return RequestPayload{Data: data}
}

// Len reports the number of elements in Data.
func (p RequestPayload) Len() int {
	return len(p.Data)
}

// MarshalJSON always emits a data array, even for the zero value.
func (p RequestPayload) MarshalJSON() ([]byte, error) {
	data := p.Data
	if data == nil {
		data = []any{}
	}
	return json.Marshal(struct {
		Data []any `json:"data"`
	}{Data: data})
}

// Validate parses raw and checks it is exactly { "data": [...] }.
//
// Syntax errors are reported as KindMalformedJSON carrying the decoder's own
// message. Anything that parses but is not a single-key object whose data
// value is an array is reported as KindInvalidShape with InvalidShapeMessage.
func Validate(raw string) (RequestPayload, error) {
	var doc json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return RequestPayload{}, malformed(err)
	}

	value, err := decodeUntyped(doc)
	if err != nil {
		return RequestPayload{}, malformed(err)
	}

	obj, ok := value.(map[string]any)
	if !ok || obj == nil {
		return RequestPayload{}, invalidShape()
	}
	if len(obj) != 1 {
		return RequestPayload{}, invalidShape()
	}
	field, ok := obj[DataKey]
	if !ok {
		return RequestPayload{}, invalidShape()
	}
	items, ok := field.([]any)
	if !ok || items == nil {
		return RequestPayload{}, invalidShape()
	}

	return RequestPayload{Data: items}, nil
}

func decodeUntyped(doc json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}
