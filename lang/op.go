package lang

import "math"

// binaryFunc is the native implementation of a binary operator.
type binaryFunc func(a, b Value) (Value, error)

// unaryFunc is the native implementation of a unary operator.
type unaryFunc func(a Value) (Value, error)

var binaryFuncs = map[string]binaryFunc{
	"+":   arithmetic(func(x, y float64) float64 { return x + y }),
	"-":   arithmetic(func(x, y float64) float64 { return x - y }),
	"*":   arithmetic(func(x, y float64) float64 { return x * y }),
	"/":   arithmetic(func(x, y float64) float64 { return x / y }),
	"%":   arithmetic(math.Mod),
	"^":   arithmetic(math.Pow),
	"max": arithmetic(maxNumber),
	"min": arithmetic(minNumber),
	"==":  equality(true),
	"!=":  equality(false),
	"<":   ordering(func(c int) bool { return c < 0 }),
	"<=":  ordering(func(c int) bool { return c <= 0 }),
	">":   ordering(func(c int) bool { return c > 0 }),
	">=":  ordering(func(c int) bool { return c >= 0 }),
	"and": logical(func(x, y bool) bool { return x && y }),
	"or":  logical(func(x, y bool) bool { return x || y }),
}

var unaryFuncs = map[string]unaryFunc{
	"sqrt":  numeric(math.Sqrt),
	"exp":   numeric(math.Exp),
	"exp2":  numeric(math.Exp2),
	"ln":    numeric(math.Log),
	"log2":  numeric(math.Log2),
	"log10": numeric(math.Log10),
	"sin":   numeric(math.Sin),
	"cos":   numeric(math.Cos),
	"tan":   numeric(math.Tan),
	"sinh":  numeric(math.Sinh),
	"cosh":  numeric(math.Cosh),
	"tanh":  numeric(math.Tanh),
	"asin":  numeric(math.Asin),
	"acos":  numeric(math.Acos),
	"atan":  numeric(math.Atan),
	"asinh": numeric(math.Asinh),
	"acosh": numeric(math.Acosh),
	"atanh": numeric(math.Atanh),
	"sign":  numeric(sign),
	"abs":   numeric(math.Abs),
	"recip": numeric(func(x float64) float64 { return 1 / x }),
	"fract": numeric(func(x float64) float64 { return x - math.Trunc(x) }),
	"trunc": numeric(math.Trunc),
	"ceil":  numeric(math.Ceil),
	"floor": numeric(math.Floor),
	"round": numeric(math.Round),
	"neg":   numeric(func(x float64) float64 { return -x }),
	"not": func(a Value) (Value, error) {
		b, err := a.AsBoolean()
		if err != nil {
			return Value{}, err
		}

		return Boolean(!b), nil
	},
	"asnum":  func(a Value) (Value, error) { return a.ToNumber(), nil },
	"asbool": func(a Value) (Value, error) { return a.ToBoolean(), nil },
}

func arithmetic(f func(x, y float64) float64) binaryFunc {
	return func(a, b Value) (Value, error) {
		x, err := a.AsNumber()
		if err != nil {
			return Value{}, err
		}

		y, err := b.AsNumber()
		if err != nil {
			return Value{}, err
		}

		return Number(f(x, y)), nil
	}
}

func equality(want bool) binaryFunc {
	return func(a, b Value) (Value, error) {
		if _, _, err := a.Compare(b); err != nil {
			return Value{}, err
		}

		return Boolean(a.Equal(b) == want), nil
	}
}

func ordering(pred func(int) bool) binaryFunc {
	return func(a, b Value) (Value, error) {
		c, ok, err := a.Compare(b)
		if err != nil {
			return Value{}, err
		}

		return Boolean(ok && pred(c)), nil
	}
}

func logical(f func(x, y bool) bool) binaryFunc {
	return func(a, b Value) (Value, error) {
		x, err := a.AsBoolean()
		if err != nil {
			return Value{}, err
		}

		y, err := b.AsBoolean()
		if err != nil {
			return Value{}, err
		}

		return Boolean(f(x, y)), nil
	}
}

func numeric(f func(float64) float64) unaryFunc {
	return func(a Value) (Value, error) {
		x, err := a.AsNumber()
		if err != nil {
			return Value{}, err
		}

		return Number(f(x)), nil
	}
}

// maxNumber and minNumber ignore a NaN operand.
func maxNumber(x, y float64) float64 {
	switch {
	case math.IsNaN(x):
		return y
	case math.IsNaN(y):
		return x
	}

	return math.Max(x, y)
}

func minNumber(x, y float64) float64 {
	switch {
	case math.IsNaN(x):
		return y
	case math.IsNaN(y):
		return x
	}

	return math.Min(x, y)
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}

	return 1
}
