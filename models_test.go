package users_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	users "github.com/goliatone/go-users"
)

func TestCreateUserRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload users.CreateUserRequest
		wantErr bool
	}{
		{
			name:    "valid with email",
			payload: users.CreateUserRequest{Name: "Alice", Email: "alice@example.com"},
		},
		{
			name:    "valid without email",
			payload: users.CreateUserRequest{Name: "Alice"},
		},
		{
			name:    "missing name",
			payload: users.CreateUserRequest{Email: "alice@example.com"},
			wantErr: true,
		},
		{
			name:    "blank name",
			payload: users.CreateUserRequest{Name: "   "},
			wantErr: true,
		},
		{
			name:    "malformed email",
			payload: users.CreateUserRequest{Name: "Alice", Email: "not-an-email"},
			wantErr: true,
		},
		{
			name:    "email without domain",
			payload: users.CreateUserRequest{Name: "Alice", Email: "alice@"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
