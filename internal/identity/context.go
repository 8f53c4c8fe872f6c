package identity

import (
	"context"
	"errors"

	userdomain "github.com/smart-practice/backend/internal/user/domain"
)

// ErrUnauthenticated is returned when an operation requires a resolved caller
// and the request context carries none.
var ErrUnauthenticated = errors.New("unauthenticated")

type userContextKey struct{}

// WithUser stores the resolved caller in the context.
func WithUser(ctx context.Context, user userdomain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// FromContext returns the resolved caller from context, if set.
func FromContext(ctx context.Context) (userdomain.User, bool) {
	if ctx == nil {
		return userdomain.User{}, false
	}
	user, ok := ctx.Value(userContextKey{}).(userdomain.User)
	return user, ok
}

// Require returns the resolved caller or ErrUnauthenticated.
func Require(ctx context.Context) (userdomain.User, error) {
	user, ok := FromContext(ctx)
	if !ok || user.ID == 0 {
		return userdomain.User{}, ErrUnauthenticated
	}
	return user, nil
}
