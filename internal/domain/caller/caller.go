package caller

import "regexp"

// Env is what the execution context supplies to every operation: who is
// calling and the current time unit. The engine never reads a clock itself.
type Env struct {
	Principal string
	Now       uint64
}

// Principals are opaque, but the transport only admits this shape: an
// address optionally followed by ".contract-name".
var rePrincipal = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

func ValidPrincipal(p string) bool { return rePrincipal.MatchString(p) }
