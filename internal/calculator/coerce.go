package calculator

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyReplacer strips the formatting users type into amounts,
// e.g. "$3,000,000" or "1 500".
var currencyReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

// ToFloat converts a loosely typed form value into a float64.
//
// nil, booleans and any unrecognized type become 0. Strings are stripped of
// "$", "," and spaces before parsing. Anything that fails to parse, or that
// does not fit in a finite float64, is also 0: callers rely on this function
// never returning an error.
func ToFloat(value any) float64 {
	return finite(toFloat(value))
}

// finite maps NaN and the infinities to 0. encoding/json cannot write them.
func finite(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		return parseAmount(v)
	default:
		return 0
	}
}

func parseAmount(s string) float64 {
	s = strings.TrimSpace(currencyReplacer.Replace(s))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}
