package builtins

import (
	"fmt"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
	"github.com/Francis589-png/JUSUPLUSPLUS/internal/value"
)

// sentinelModule backs an optional named module (http, ffi, js, wasm, np,
// pd) whose host capability this build doesn't carry. Its presence keeps
// startup and name resolution working for scripts that reference the
// module name; any attribute resolves to a callable that raises a Runtime
// error the moment it is invoked, rather than failing at startup or at
// bare name lookup.
type sentinelModule struct {
	name   string
	reason string
}

func (s *sentinelModule) Attr(seg string) (value.Value, bool) {
	fullName := s.name + "." + seg
	reason := s.reason
	return native(fullName, -1, func(args []value.Value) (value.Value, error) {
		return value.Null, errs.New(errs.Runtime, "%s", reason)
	}), true
}

func (s *sentinelModule) String() string {
	return fmt.Sprintf("<module %s unavailable>", s.name)
}

func sentinel(name, reason string) value.Value {
	return value.Host(&sentinelModule{name: name, reason: reason})
}
