// Package builtins implements the Jusu++ standard library: the core
// functions bound at startup (str, int, float, len, print, range, sum,
// max, min, list, dict, append) and the optional named modules (math,
// json, time, random, http, ffi, js, wasm, np, pd). All three backends
// (interpreter, stack VM, register VM) share this single implementation
// so their observable behaviour agrees.
package builtins

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
)

// Library holds the built-in bindings made available to a running
// program. A fresh Library should be created per interpreter/VM instance
// since it owns a private random source and output sink: each running
// program gets its own, independent of any others running concurrently.
type Library struct {
	Output io.Writer
	rng    *rand.Rand
}

// New creates a Library writing `say`/`print` output to out. A nil out
// discards output.
func New(out io.Writer) *Library {
	return &Library{Output: out, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (l *Library) write(s string) {
	if l.Output == nil {
		return
	}
	fmt.Fprint(l.Output, s)
}

func native(name string, arity int, fn func(args []value.Value) (value.Value, error)) value.Value {
	return value.Call(&value.NativeFunc{FuncName: name, NumArgs: arity, Fn: fn})
}

// Globals returns the core bindings present at interpreter startup
// regardless of which optional host capabilities are available.
func (l *Library) Globals() map[string]value.Value {
	return map[string]value.Value{
		"str":    native("str", 1, builtinStr),
		"int":    native("int", 1, builtinInt),
		"float":  native("float", 1, builtinFloat),
		"len":    native("len", 1, builtinLen),
		"print":  native("print", -1, l.builtinPrint),
		"range":  native("range", -1, builtinRange),
		"sum":    native("sum", 1, builtinSum),
		"max":    native("max", -1, builtinMax),
		"min":    native("min", -1, builtinMin),
		"list":   native("list", -1, builtinList),
		"dict":   native("dict", 0, builtinDict),
		"append": native("append", 2, builtinAppend),
	}
}

// Modules returns every optional named module: math, json, time, random
// are backed purely by the Go standard library plus the bundled
// third-party parsers, so they are always live. http, ffi, js, wasm, np,
// and pd need a host capability this build doesn't carry (an HTTP
// client, a dynamic FFI loader, an embedded JS or WASM engine, array/
// dataframe support); their names are still bound, to sentinel modules
// that raise a Runtime error the moment one of their functions is
// called, so referencing an unavailable module never prevents startup.
func (l *Library) Modules() map[string]value.Value {
	return map[string]value.Value{
		"math":   l.mathModule(),
		"json":   l.jsonModule(),
		"time":   l.timeModule(),
		"random": l.randomModule(),
		"http":   sentinel("http", "http is not available in this build; network access was not compiled in"),
		"ffi":    sentinel("ffi", "ffi is not available in this build; dynamic native loading was not compiled in"),
		"js":     sentinel("js", "js is not available in this build; no JavaScript engine was compiled in"),
		"wasm":   sentinel("wasm", "wasm is not available in this build; no WebAssembly runtime was compiled in"),
		"np":     sentinel("np", "np is not available in this build; array support was not compiled in"),
		"pd":     sentinel("pd", "pd is not available in this build; dataframe support was not compiled in"),
	}
}

func typeErr(msg string) error {
	return errs.New(errs.Type, "%s", msg)
}
