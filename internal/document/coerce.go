package document

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
)

// Data type hints accepted by Coerce.
const (
	DTypeAuto   = ""
	DTypeString = "str"
	DTypeInt    = "int"
	DTypeFloat  = "float"
	DTypeBool   = "bool"
)

// DTypes lists the explicit data type hints.
var DTypes = []string{DTypeString, DTypeInt, DTypeFloat, DTypeBool}

// Coerce converts textual input to dtype. An empty dtype infers int, float,
// bool and finally string, in that order.
func Coerce(text, dtype string) (any, error) {
	switch dtype {
	case DTypeAuto:
		return infer(text), nil
	case DTypeString, "string":
		return text, nil
	case DTypeInt:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an int", kerrors.ErrInvalidValue, text)
		}
		return n, nil
	case DTypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a float", kerrors.ErrInvalidValue, text)
		}
		return f, nil
	case DTypeBool:
		b, ok := parseBool(text)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a bool", kerrors.ErrInvalidValue, text)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown data type %q (valid: %s)",
			kerrors.ErrInvalidValue, dtype, strings.Join(DTypes, ", "))
	}
}

func infer(text string) any {
	s := strings.TrimSpace(text)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// ParseFloat also accepts "inf" and "nan"; only infer floats from numerals.
	if strings.IndexFunc(s, unicode.IsDigit) >= 0 {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if b, ok := parseBool(s); ok {
		return b
	}
	return text
}

func parseBool(text string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	}
	return false, false
}
