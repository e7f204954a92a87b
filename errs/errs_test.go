package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidArgument(t *testing.T) {
	err := InvalidArgumentf("--action should be one of %s, not %q", "create/update/delete", "rename")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrAuthRequired))
	assert.Equal(t, `--action should be one of create/update/delete, not "rename"`, err.Error())

	wrapped := fmt.Errorf("validating flags: %w", err)
	assert.True(t, errors.Is(wrapped, ErrInvalidArgument))
}

func TestAuthRequired(t *testing.T) {
	assert.Nil(t, AuthRequired(nil))

	cause := errors.New("token is empty")
	err := AuthRequired(cause)
	assert.True(t, errors.Is(err, ErrAuthRequired))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "token is empty", err.Error())
}
