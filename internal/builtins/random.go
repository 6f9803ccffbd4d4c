package builtins

import "github.com/Francis589-png/JUSUPLUSPLUS/internal/value"

func (l *Library) randomModule() value.Value {
	m := value.NewMap()
	m.Set("rand", native("random.rand", 0, l.randomRand))
	return value.Mapping(m)
}

func (l *Library) randomRand(args []value.Value) (value.Value, error) {
	return value.Number(l.rng.Float64()), nil
}
