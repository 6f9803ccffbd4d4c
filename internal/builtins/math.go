package builtins

import (
	"math"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
)

func (l *Library) mathModule() value.Value {
	m := value.NewMap()
	m.Set("pi", value.Number(math.Pi))
	m.Set("sqrt", native("math.sqrt", 1, mathSqrt))
	m.Set("sin", native("math.sin", 1, mathSin))
	return value.Mapping(m)
}

func mathSqrt(args []value.Value) (value.Value, error) {
	if args[0].Type != value.TypeNumber {
		return value.Null, typeErr("math.sqrt(): argument must be a number")
	}
	n := args[0].AsNumber()
	if n < 0 {
		return value.Null, typeErr("math.sqrt(): argument must be non-negative")
	}
	return value.Number(math.Sqrt(n)), nil
}

func mathSin(args []value.Value) (value.Value, error) {
	if args[0].Type != value.TypeNumber {
		return value.Null, typeErr("math.sin(): argument must be a number")
	}
	return value.Number(math.Sin(args[0].AsNumber())), nil
}
