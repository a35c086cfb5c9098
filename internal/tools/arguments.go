package tools

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Arguments are the decoded "arguments" object of a tools/call. Values
// of the wrong type read as absent; nothing here fails.
type Arguments map[string]interface{}

// ParseArguments never errors: a missing, null or non-object payload
// gives empty Arguments, so required fields fall back to "".
func ParseArguments(raw json.RawMessage) Arguments {
	args := Arguments{}
	if len(raw) == 0 {
		return args
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&args); err != nil || args == nil {
		return Arguments{}
	}
	return args
}

func (a Arguments) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// ID reads an identifier that clients send either as "42" or 42.
func (a Arguments) ID(key string) string {
	switch v := a[key].(type) {
	case string:
		return v
	case json.Number:
		if n, ok := wholeNumber(v); ok {
			return strconv.FormatUint(n, 10)
		}
		return v.String()
	}
	return ""
}

// Uint reads a non-negative integer; anything else is absent.
func (a Arguments) Uint(key string) *uint64 {
	v, ok := a[key].(json.Number)
	if !ok {
		return nil
	}
	n, ok := wholeNumber(v)
	if !ok {
		return nil
	}
	return &n
}

func (a Arguments) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// maxWholeNumber is the largest integer a float64 holds exactly; it caps
// plain and fractional/exponent spellings alike.
const maxWholeNumber = 1 << 53

func wholeNumber(v json.Number) (uint64, bool) {
	if n, err := strconv.ParseUint(v.String(), 10, 64); err == nil {
		return n, n <= maxWholeNumber
	}
	f, err := v.Float64()
	if err != nil || f < 0 || f != math.Trunc(f) || f > maxWholeNumber {
		return 0, false
	}
	return uint64(f), true
}
