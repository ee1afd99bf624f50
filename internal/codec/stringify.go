// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"strconv"

	"github.com/google/uricomponents/pkg/uri"
)

// Stringify coerces a component input to its string form. It is the only
// place where loosely typed input is accepted: nil means an absent
// component, strings, byte slices, numbers and booleans are converted, and
// URI components and fmt.Stringer values contribute their string form.
// Any other type is an ErrType.
func Stringify(v any) (s string, ok bool, err error) {
	switch t := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return t, true, nil
	case *string:
		if t == nil {
			return "", false, nil
		}
		return *t, true, nil
	case []byte:
		return string(t), true, nil
	case bool:
		if t {
			return "1", true, nil
		}
		return "0", true, nil
	case int:
		return strconv.FormatInt(int64(t), 10), true, nil
	case int8:
		return strconv.FormatInt(int64(t), 10), true, nil
	case int16:
		return strconv.FormatInt(int64(t), 10), true, nil
	case int32:
		return strconv.FormatInt(int64(t), 10), true, nil
	case int64:
		return strconv.FormatInt(t, 10), true, nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), true, nil
	case uint8:
		return strconv.FormatUint(uint64(t), 10), true, nil
	case uint16:
		return strconv.FormatUint(uint64(t), 10), true, nil
	case uint32:
		return strconv.FormatUint(uint64(t), 10), true, nil
	case uint64:
		return strconv.FormatUint(t, 10), true, nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true, nil
	case uri.Component:
		s, ok := t.Value()
		return s, ok, nil
	case fmt.Stringer:
		return t.String(), true, nil
	default:
		return "", false, uri.Typef("%T can not be converted to a string", v)
	}
}
