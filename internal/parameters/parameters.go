// Package parameters parses player configuration strings like "nn,file=weights.bin,depth=1"
// into Params, and offers typed accessors for their values.
package parameters

import (
	"github.com/pkg/errors"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Params is a set of configuration key/values. Keys given without a value map to "".
type Params map[string]string

// Value types supported by GetParamOr and PopParamOr.
type Value interface {
	bool | int | float64 | string
}

// Parse splits a comma-separated configuration string into its first element, usually the
// name of the module configured, and the Params formed by the remaining elements.
//
// E.g.: "nn,file=weights.bin,adversarial" returns "nn" and {"file": "weights.bin", "adversarial": ""}.
func Parse(config string) (name string, params Params) {
	params = make(Params)
	parts := strings.Split(config, ",")
	name = strings.TrimSpace(parts[0])
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		params[key] = value
	}
	return
}

// GetParamOr parses the value of key as T, or returns defaultValue if key is not set.
//
// For bool, a key without a value is interpreted as true.
func GetParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, found := params[key]
	if !found {
		return defaultValue, nil
	}
	var parsed any
	var err error
	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case int:
		parsed, err = strconv.Atoi(value)
	case float64:
		parsed, err = strconv.ParseFloat(value, 64)
	case bool:
		if value == "" {
			parsed = true
		} else {
			parsed, err = strconv.ParseBool(value)
		}
	}
	if err != nil {
		return defaultValue, errors.Wrapf(err, "failed to parse parameter %s=%q as %T", key, value, defaultValue)
	}
	return parsed.(T), nil
}

// PopParamOr is like GetParamOr, but it also deletes key from params.
func PopParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// CheckAllUsed returns an error listing the keys left in params. It is called after all
// known parameters were popped.
func CheckAllUsed(params Params) error {
	if len(params) == 0 {
		return nil
	}
	keys := slices.Sorted(maps.Keys(params))
	return errors.Errorf("unknown parameters \"%s\"", strings.Join(keys, "\", \""))
}
