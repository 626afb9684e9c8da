package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrCodeUnreachable, "upstream call failed")

	assert.Equal(t, "upstream call failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsUnreachable(err))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsUnauthenticated(Unauthenticated("no session")))
	assert.True(t, IsForbidden(Forbidden("nope")))
	assert.True(t, IsUpstream(Upstreamf("result code %s", "F-401")))
	assert.True(t, IsValidation(ValidationField("email", "email is required")))
	assert.False(t, IsForbidden(Unauthenticated("no session")))
	assert.False(t, IsUnauthenticated(errors.New("plain")))
}

func TestPredicates_ThroughWrapping(t *testing.T) {
	inner := Forbidden("not allowed")
	outer := fmt.Errorf("list orders: %w", inner)

	assert.True(t, IsForbidden(outer))
	assert.Equal(t, ErrCodeForbidden, GetCode(outer))
}

func TestGetField(t *testing.T) {
	assert.Equal(t, "email", GetField(ValidationField("email", "required")))
	assert.Empty(t, GetField(Internal("boom")))
	assert.Empty(t, GetField(errors.New("plain")))
}

func TestWrap_NilCause(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}
