package builtins

import (
	"time"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
)

func (l *Library) timeModule() value.Value {
	m := value.NewMap()
	m.Set("now", native("time.now", 0, timeNow))
	return value.Mapping(m)
}

func timeNow(args []value.Value) (value.Value, error) {
	return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
}
