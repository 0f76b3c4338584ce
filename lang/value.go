package lang

import (
	"log/slog"
	"math"
	"strconv"
)

// Kind identifies the type of a [Value].
type Kind uint8

const (
	KindNumber Kind = iota
	KindBoolean
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a number or a boolean.
// The zero Value is the number 0.
type Value struct {
	kind Kind
	num  float64
	bool bool
}

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Boolean returns a boolean Value.
func Boolean(b bool) Value { return Value{kind: KindBoolean, bool: b} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsBoolean reports whether v holds a boolean.
func (v Value) IsBoolean() bool { return v.kind == KindBoolean }

// AsNumber returns the number held by v, or fails if v is a boolean.
func (v Value) AsNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, ErrTypeMismatch.Errorf("%s not a number", v).
			With(slog.String("kind", v.kind.String()))
	}

	return v.num, nil
}

// AsBoolean returns the boolean held by v, or fails if v is a number.
func (v Value) AsBoolean() (bool, error) {
	if v.kind != KindBoolean {
		return false, ErrTypeMismatch.Errorf("%s not a boolean", v).
			With(slog.String("kind", v.kind.String()))
	}

	return v.bool, nil
}

// ToNumber converts v to a number. Booleans become 1 or 0.
func (v Value) ToNumber() Value {
	if v.kind == KindBoolean {
		if v.bool {
			return Number(1)
		}

		return Number(0)
	}

	return v
}

// ToBoolean converts v to a boolean. Numbers are true when non-zero.
func (v Value) ToBoolean() Value {
	if v.kind == KindNumber {
		return Boolean(v.num != 0)
	}

	return v
}

// Equal reports whether v and w hold the same kind and value.
// Values of different kinds are never equal.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}

	if v.kind == KindBoolean {
		return v.bool == w.bool
	}

	return v.num == w.num
}

// Compare orders v against w and returns -1, 0 or +1.
// Both values must share a kind; false orders before true.
// Comparing a NaN with anything reports ok false.
func (v Value) Compare(w Value) (cmp int, ok bool, err error) {
	if v.kind != w.kind {
		return 0, false, ErrTypeMismatch.
			Errorf("Mismatched comparison - '%s' and '%s'", v, w).
			With(slog.String("left", v.kind.String()), slog.String("right", w.kind.String()))
	}

	if v.kind == KindBoolean {
		switch {
		case v.bool == w.bool:
			return 0, true, nil
		case w.bool:
			return -1, true, nil
		default:
			return 1, true, nil
		}
	}

	switch {
	case math.IsNaN(v.num) || math.IsNaN(w.num):
		return 0, false, nil
	case v.num < w.num:
		return -1, true, nil
	case v.num > w.num:
		return 1, true, nil
	default:
		return 0, true, nil
	}
}

// String formats v the way the REPL prints results: numbers in their
// shortest exact decimal form without exponent, booleans as true or false.
func (v Value) String() string {
	if v.kind == KindBoolean {
		return strconv.FormatBool(v.bool)
	}

	switch {
	case math.IsInf(v.num, 1):
		return "inf"
	case math.IsInf(v.num, -1):
		return "-inf"
	case math.IsNaN(v.num):
		return "NaN"
	}

	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// Native returns v as a float64 or a bool.
func (v Value) Native() any {
	if v.kind == KindBoolean {
		return v.bool
	}

	return v.num
}

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value {
	if v.kind == KindBoolean {
		return slog.BoolValue(v.bool)
	}

	return slog.Float64Value(v.num)
}
