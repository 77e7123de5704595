package router

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"analytics-api/internal/errors"
)

// payload reads optional typed fields out of a decoded JSON object. Absent
// and null fields yield nil.
type payload map[string]any

// numberLike matches json.Number from either JSON codec.
type numberLike interface {
	Float64() (float64, error)
}

// num coerces a field to float64. Numeric strings are parsed; anything else
// that is not a number is rejected.
func (p payload) num(field string) (*float64, error) {
	raw, present := p[field]
	if !present || raw == nil {
		return nil, nil
	}

	var (
		v   float64
		err error
	)
	switch x := raw.(type) {
	case float64:
		v = x
	case int:
		v = float64(x)
	case int64:
		v = float64(x)
	case numberLike:
		v, err = x.Float64()
	case string:
		v, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		err = fmt.Errorf("unsupported type %T", raw)
	}
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errors.Validationf("%s must be a number", field)
	}
	return &v, nil
}

// str coerces a field to string. Scalars are formatted; objects and arrays
// are rejected.
func (p payload) str(field string) (*string, error) {
	raw, present := p[field]
	if !present || raw == nil {
		return nil, nil
	}

	var s string
	switch x := raw.(type) {
	case string:
		s = x
	case fmt.Stringer:
		s = x.String()
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(x)
	default:
		return nil, errors.Validationf("%s must be a string", field)
	}
	return &s, nil
}

// strs reads several string fields, stopping at the first failure.
func (p payload) strs(fields ...string) (map[string]*string, error) {
	out := make(map[string]*string, len(fields))
	for _, f := range fields {
		v, err := p.str(f)
		if err != nil {
			return nil, err
		}
		out[f] = v
	}
	return out, nil
}

// nums reads several numeric fields, stopping at the first failure.
func (p payload) nums(fields ...string) (map[string]*float64, error) {
	out := make(map[string]*float64, len(fields))
	for _, f := range fields {
		v, err := p.num(f)
		if err != nil {
			return nil, err
		}
		out[f] = v
	}
	return out, nil
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
