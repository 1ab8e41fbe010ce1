package fieldtype

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the expected type of a typed required argument.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "str"
	}
}

// Convert checks that raw can be read as a value of kind k and returns its
// normalized source form.
//
// It handles:
//   - int: decimal integers, optional sign ("250", "-1")
//   - float: anything strconv.ParseFloat accepts except NaN/Inf spellings
//   - bool: Python literals True/False only
//   - str: any value, returned unchanged
func (k Kind) Convert(raw string) (string, error) {
	switch k {
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Errorf("%q is not an int", raw)
		}
		return strconv.Itoa(n), nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%q is not a float", raw)
		}
		return raw, nil
	case KindBool:
		if raw != "True" && raw != "False" {
			return "", fmt.Errorf("%q is not a bool", raw)
		}
		return raw, nil
	default:
		return raw, nil
	}
}
