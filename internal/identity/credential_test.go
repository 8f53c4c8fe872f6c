package identity

import (
	"context"
	"testing"

	userdomain "github.com/smart-practice/backend/internal/user/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramIDFromCredentials(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		header        string
		want          int64
		wantErr       bool
	}{
		{name: "bearer token", authorization: `Bearer {"telegram_id":123456}`, want: 123456},
		{name: "plain header", header: "654321", want: 654321},
		{name: "bearer wins over header", authorization: `Bearer {"telegram_id":111}`, header: "222", want: 111},
		{name: "malformed token", authorization: `Bearer not-json`, wantErr: true},
		{name: "zero id in token", authorization: `Bearer {"telegram_id":0}`, wantErr: true},
		{name: "non-numeric header", header: "abc", wantErr: true},
		{name: "zero header", header: "0", wantErr: true},
		{name: "nothing provided", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TelegramIDFromCredentials(tt.authorization, tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnauthenticated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequire(t *testing.T) {
	_, err := Require(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	user := userdomain.User{ID: 42, TelegramID: 123456, Role: userdomain.RoleStudent}
	ctx := WithUser(context.Background(), user)

	got, err := Require(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	// A zero user in context still counts as unauthenticated.
	_, err = Require(WithUser(context.Background(), userdomain.User{}))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
