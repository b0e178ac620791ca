package wizard

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// setField returns a new form with the value at path replaced. The form is
// flattened to its JSON document, patched, and decoded into a fresh value, so
// the result never shares slices or maps with the input.
func setField[T any](form T, path string, value any) (T, error) {
	var zero T
	segments := strings.Split(strings.TrimSpace(path), ".")
	for _, s := range segments {
		if s == "" {
			return zero, &FieldError{Path: path, Err: ErrUnknownField, Msg: "empty path segment"}
		}
	}

	raw, err := json.Marshal(form)
	if err != nil {
		return zero, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return zero, err
	}

	newKey, err := setPath(doc, segments, value)
	if err != nil {
		return zero, &FieldError{Path: path, Err: ErrUnknownField, Msg: err.Error()}
	}

	var next T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       rejectFractionalInts,
		Result:           &next,
	})
	if err != nil {
		return zero, err
	}
	if err := dec.Decode(doc); err != nil {
		if newKey {
			return zero, &FieldError{Path: path, Err: ErrUnknownField, Msg: err.Error()}
		}
		return zero, &FieldError{Path: path, Err: ErrInvalidFieldValue, Msg: err.Error()}
	}
	return next, nil
}

// setPath writes value into the nested document. It reports whether the final
// key did not exist before; that is legal for map-valued fields only, which the
// decoder decides.
func setPath(node any, segments []string, value any) (bool, error) {
	seg := segments[0]
	last := len(segments) == 1

	switch n := node.(type) {
	case map[string]any:
		child, ok := n[seg]
		if last {
			n[seg] = value
			return !ok, nil
		}
		if !ok || child == nil {
			return false, fmt.Errorf("no field %q", seg)
		}
		return setPath(child, segments[1:], value)

	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(n) {
			return false, fmt.Errorf("index %q out of range", seg)
		}
		if last {
			n[idx] = value
			return false, nil
		}
		return setPath(n[idx], segments[1:], value)
	}
	return false, fmt.Errorf("%q is not a container", seg)
}

// rejectFractionalInts refuses floats that would be truncated into an integer
// field, such as 2.7 guests or 0.5 paise.
func rejectFractionalInts(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 && from.Kind() != reflect.Float32 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	f := reflect.ValueOf(data).Float()
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", data)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, fmt.Errorf("%v is out of range", data)
	}
	return data, nil
}
