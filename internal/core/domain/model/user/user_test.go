package user_test

import (
	"testing"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	op, err := user.NewUser(kernel.NewUUID(), " olga ", user.RoleOperator)
	require.NoError(t, err)
	assert.Equal(t, "olga", op.Username())
	assert.True(t, op.IsOperator())

	admin, err := user.NewUser(kernel.NewUUID(), "root", user.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, admin.IsOperator())

	_, err = user.NewUser(kernel.NewUUID(), "", "driver")
	require.ErrorIs(t, err, user.ErrUsernameIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
