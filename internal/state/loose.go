package state

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Helpers reading loosely typed JSON values the way a browser form would
// have written them.

type record map[string]json.RawMessage

// asRecord decodes an object, yielding an empty record for anything else.
func asRecord(raw json.RawMessage) record {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil || r == nil {
		return record{}
	}
	return r
}

// asArray decodes an array, yielding nil for anything else.
func asArray(raw json.RawMessage) []json.RawMessage {
	var a []json.RawMessage
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil
	}
	return a
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func decodeAny(raw json.RawMessage) (any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// looseString converts scalars to their text form. Missing values, null,
// arrays and objects become "".
func looseString(raw json.RawMessage) string {
	v, ok := decodeAny(raw)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// jsNumber converts a value to a float64 with JavaScript Number() rules
// for scalars: null, false and blank strings are 0, true is 1, numeric
// strings parse after trimming. Missing values and anything else are NaN.
func jsNumber(raw json.RawMessage) float64 {
	v, ok := decodeAny(raw)
	if !ok {
		return math.NaN()
	}
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		return parseFloat(x.String())
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		return parseFloat(s)
	}
	return math.NaN()
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out-of-range literals report ±Inf with ErrRange.
		if math.IsInf(f, 0) {
			return f
		}
		return math.NaN()
	}
	return f
}

// truthy reports JavaScript truthiness of a value. Missing is false.
func truthy(raw json.RawMessage) bool {
	v, ok := decodeAny(raw)
	if !ok {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case json.Number:
		f := parseFloat(x.String())
		return f != 0 && !math.IsNaN(f)
	case string:
		return x != ""
	}
	return true
}
