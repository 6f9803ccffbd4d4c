package builtins

import (
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

func (l *Library) jsonModule() value.Value {
	m := value.NewMap()
	m.Set("loads", native("json.loads", 1, jsonLoads))
	m.Set("dumps", native("json.dumps", 1, jsonDumps))
	return value.Mapping(m)
}

func jsonLoads(args []value.Value) (value.Value, error) {
	if args[0].Type != value.TypeString {
		return value.Null, typeErr("json.loads(): argument must be a string")
	}
	text := args[0].AsString()
	if !gjson.Valid(text) {
		return value.Null, errs.New(errs.Runtime, "json.loads(): invalid JSON")
	}
	return gjsonToValue(gjson.Parse(text)), nil
}

func gjsonToValue(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.Null
	case gjson.False:
		return value.Bool(false)
	case gjson.True:
		return value.Bool(true)
	case gjson.Number:
		return value.Number(r.Num)
	case gjson.String:
		return value.String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var elems []value.Value
			for _, item := range r.Array() {
				elems = append(elems, gjsonToValue(item))
			}
			return value.Array(elems)
		}
		m := value.NewMap()
		r.ForEach(func(key, val gjson.Result) bool {
			m.Set(key.String(), gjsonToValue(val))
			return true
		})
		return value.Mapping(m)
	default:
		return value.Null
	}
}

func jsonDumps(args []value.Value) (value.Value, error) {
	raw, err := valueToJSON(args[0])
	if err != nil {
		return value.Null, err
	}
	return value.String(raw), nil
}

// valueToJSON serialises v via repeated sjson.SetRaw calls against an
// accumulating document, keeping the JSON builtin on the same
// tidwall/sjson machinery the rest of the module uses for mutation.
func valueToJSON(v value.Value) (string, error) {
	switch v.Type {
	case value.TypeNull:
		return "null", nil
	case value.TypeBool:
		if v.AsBool() {
			return "true", nil
		}
		return "false", nil
	case value.TypeNumber:
		return gjson.Parse(formatJSONNumber(v.AsNumber())).Raw, nil
	case value.TypeString:
		raw, err := sjson.Set("", "x", v.AsString())
		if err != nil {
			return "", errs.New(errs.Runtime, "json.dumps(): %v", err)
		}
		return gjson.Get(raw, "x").Raw, nil
	case value.TypeArray:
		doc := "[]"
		for _, elem := range *v.AsArray() {
			encoded, err := valueToJSON(elem)
			if err != nil {
				return "", err
			}
			var err2 error
			doc, err2 = sjson.SetRaw(doc, "-1", encoded)
			if err2 != nil {
				return "", errs.New(errs.Runtime, "json.dumps(): %v", err2)
			}
		}
		return doc, nil
	case value.TypeMap:
		doc := "{}"
		for _, key := range v.AsMap().Keys() {
			val, _ := v.AsMap().Get(key)
			encoded, err := valueToJSON(val)
			if err != nil {
				return "", err
			}
			var err2 error
			doc, err2 = sjson.SetRaw(doc, key, encoded)
			if err2 != nil {
				return "", errs.New(errs.Runtime, "json.dumps(): %v", err2)
			}
		}
		return doc, nil
	default:
		return "", typeErr("json.dumps(): cannot serialise a " + v.Type.String())
	}
}

func formatJSONNumber(f float64) string {
	return value.Inspect(value.Number(f))
}
