package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrUnsupportedValue is returned when a personal field is not a string,
// number or boolean.
var ErrUnsupportedValue = errors.New("unsupported value type")

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindString ValueKind = iota + 1
	KindNumber
	KindBool
	KindInteger
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	default:
		return "invalid"
	}
}

// Value is a scalar personal field: a string, a number or a boolean.
// Whole numbers that fit in an int64 are kept as KindInteger so that long
// document numbers survive exactly.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Int  int64
	Bool bool
}

func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func IntValue(i int64) Value { return Value{Kind: KindInteger, Int: i} }
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func (v Value) IsValid() bool { return v.Kind >= KindString && v.Kind <= KindInteger }

// ValueOf converts a decoded JSON value into a Value.
// The second result is false for nulls, objects and arrays.
func ValueOf(raw any) (Value, bool) {
	switch x := raw.(type) {
	case string:
		return StringValue(x), true
	case bool:
		return BoolValue(x), true
	case float64:
		return NumberValue(x), true
	case int:
		return IntValue(int64(x)), true
	case int64:
		return IntValue(x), true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return IntValue(i), true
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, false
		}
		return NumberValue(f), true
	default:
		return Value{}, false
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return []byte(strconv.FormatFloat(v.Num, 'f', -1, 64)), nil
	case KindInteger:
		return []byte(strconv.FormatInt(v.Int, 10)), nil
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedValue, v.Kind)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, ok := ValueOf(raw)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedValue, data)
	}
	*v = parsed
	return nil
}
