package builtins

import (
	"fmt"
	"strconv"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
)

func builtinStr(args []value.Value) (value.Value, error) {
	return value.String(value.Inspect(args[0])), nil
}

func builtinInt(args []value.Value) (value.Value, error) {
	switch args[0].Type {
	case value.TypeNumber:
		return value.Number(float64(int64(args[0].AsNumber()))), nil
	case value.TypeString:
		n, err := strconv.ParseFloat(args[0].AsString(), 64)
		if err != nil {
			return value.Null, typeErr(fmt.Sprintf("int(): cannot convert %q", args[0].AsString()))
		}
		return value.Number(float64(int64(n))), nil
	case value.TypeBool:
		if args[0].AsBool() {
			return value.Number(1), nil
		}
		return value.Number(0), nil
	default:
		return value.Null, typeErr("int(): unsupported argument type " + args[0].Type.String())
	}
}

func builtinFloat(args []value.Value) (value.Value, error) {
	switch args[0].Type {
	case value.TypeNumber:
		return args[0], nil
	case value.TypeString:
		n, err := strconv.ParseFloat(args[0].AsString(), 64)
		if err != nil {
			return value.Null, typeErr(fmt.Sprintf("float(): cannot convert %q", args[0].AsString()))
		}
		return value.Number(n), nil
	default:
		return value.Null, typeErr("float(): unsupported argument type " + args[0].Type.String())
	}
}

func builtinLen(args []value.Value) (value.Value, error) {
	switch args[0].Type {
	case value.TypeString:
		return value.Number(float64(len([]rune(args[0].AsString())))), nil
	case value.TypeArray:
		return value.Number(float64(len(*args[0].AsArray()))), nil
	case value.TypeMap:
		return value.Number(float64(args[0].AsMap().Len())), nil
	default:
		return value.Null, typeErr("len(): unsupported argument type " + args[0].Type.String())
	}
}

func (l *Library) builtinPrint(args []value.Value) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.Inspect(a)
	}
	for i, p := range parts {
		if i > 0 {
			l.write(" ")
		}
		l.write(p)
	}
	l.write("\n")
	return value.Null, nil
}

func builtinRange(args []value.Value) (value.Value, error) {
	var start, stop, step float64 = 0, 0, 1
	switch len(args) {
	case 1:
		stop = args[0].AsNumber()
	case 2:
		start, stop = args[0].AsNumber(), args[1].AsNumber()
	case 3:
		start, stop, step = args[0].AsNumber(), args[1].AsNumber(), args[2].AsNumber()
	default:
		return value.Null, errs.New(errs.Runtime, "range() expects 1 to 3 arguments, got %d", len(args))
	}
	for _, a := range args {
		if a.Type != value.TypeNumber {
			return value.Null, typeErr("range(): arguments must be numbers")
		}
	}
	if step == 0 {
		return value.Null, errs.New(errs.ZeroDivision, "range() step must not be zero")
	}
	var out []value.Value
	if step > 0 {
		for v := start; v < stop; v += step {
			out = append(out, value.Number(v))
		}
	} else {
		for v := start; v > stop; v += step {
			out = append(out, value.Number(v))
		}
	}
	return value.Array(out), nil
}

func builtinSum(args []value.Value) (value.Value, error) {
	if args[0].Type != value.TypeArray {
		return value.Null, typeErr("sum(): argument must be a sequence")
	}
	total := 0.0
	for _, v := range *args[0].AsArray() {
		if v.Type != value.TypeNumber {
			return value.Null, typeErr("sum(): sequence elements must be numbers")
		}
		total += v.AsNumber()
	}
	return value.Number(total), nil
}

func builtinMax(args []value.Value) (value.Value, error) {
	items, err := numericVariadic("max", args)
	if err != nil {
		return value.Null, err
	}
	best := items[0]
	for _, v := range items[1:] {
		if v > best {
			best = v
		}
	}
	return value.Number(best), nil
}

func builtinMin(args []value.Value) (value.Value, error) {
	items, err := numericVariadic("min", args)
	if err != nil {
		return value.Null, err
	}
	best := items[0]
	for _, v := range items[1:] {
		if v < best {
			best = v
		}
	}
	return value.Number(best), nil
}

// numericVariadic accepts either a single sequence argument or two-or-more
// scalar arguments, mirroring how max/min read naturally in call position.
func numericVariadic(name string, args []value.Value) ([]float64, error) {
	if len(args) == 1 && args[0].Type == value.TypeArray {
		seq := *args[0].AsArray()
		if len(seq) == 0 {
			return nil, errs.New(errs.Runtime, "%s(): sequence must not be empty", name)
		}
		out := make([]float64, len(seq))
		for i, v := range seq {
			if v.Type != value.TypeNumber {
				return nil, typeErr(name + "(): sequence elements must be numbers")
			}
			out[i] = v.AsNumber()
		}
		return out, nil
	}
	if len(args) == 0 {
		return nil, errs.New(errs.Runtime, "%s(): expects at least 1 argument", name)
	}
	out := make([]float64, len(args))
	for i, v := range args {
		if v.Type != value.TypeNumber {
			return nil, typeErr(name + "(): arguments must be numbers")
		}
		out[i] = v.AsNumber()
	}
	return out, nil
}

func builtinList(args []value.Value) (value.Value, error) {
	out := make([]value.Value, len(args))
	copy(out, args)
	return value.Array(out), nil
}

func builtinDict(args []value.Value) (value.Value, error) {
	return value.Mapping(value.NewMap()), nil
}

func builtinAppend(args []value.Value) (value.Value, error) {
	if args[0].Type != value.TypeArray {
		return value.Null, typeErr("append(): first argument must be a sequence")
	}
	seq := args[0].AsArray()
	*seq = append(*seq, args[1])
	return args[0], nil
}
