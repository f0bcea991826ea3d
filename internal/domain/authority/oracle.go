package authority

import "context"

// Oracle answers whether a principal is a verified authority. Results are
// authoritative and must not be cached by callers.
type Oracle interface {
	IsVerifiedAuthority(ctx context.Context, principal string) (bool, error)
}

// Registry is an Oracle whose verified set can be administered.
type Registry interface {
	Oracle
	Add(ctx context.Context, principals ...string) error
	Remove(ctx context.Context, principal string) error
	List(ctx context.Context) ([]string, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, principal string) (bool, error)

func (f OracleFunc) IsVerifiedAuthority(ctx context.Context, principal string) (bool, error) {
	return f(ctx, principal)
}
