package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndCode(t *testing.T) {
	err := New(ErrCodeNotFound, "missing thing")
	assert.Equal(t, ErrCodeNotFound, GetCode(err))
	assert.Contains(t, err.Error(), "COMMON_003")
	assert.Contains(t, err.Error(), "missing thing")
	assert.True(t, IsNotFound(err))
}

func TestWrapPreservesChain(t *testing.T) {
	root := stderrors.New("connection refused")
	wrapped := Wrap(root, ErrCodeDatabaseError, "query failed")

	assert.True(t, stderrors.Is(wrapped, root))
	assert.Equal(t, ErrCodeDatabaseError, GetCode(wrapped))
	assert.True(t, IsCode(wrapped, ErrCodeDatabaseError))
	assert.False(t, IsCode(wrapped, ErrCodeNotFound))
}

func TestWrapNilIsNil(t *testing.T) {
	var err *AppError = Wrap(nil, ErrCodeInternal, "ignored")
	assert.Nil(t, err)
}

func TestWrapUnknownKeepsOriginalCode(t *testing.T) {
	inner := New(ErrCodeCalendarExhausted, "walk gave up")
	wrapped := Wrap(inner, CodeUnknown, "computation failed")
	assert.Equal(t, ErrCodeCalendarExhausted, GetCode(wrapped))
}

func TestWrapf(t *testing.T) {
	root := stderrors.New("boom")
	err := Wrapf(root, ErrCodeDatabaseError, "failed after %d attempts", 3)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.True(t, stderrors.Is(err, root))
}

func TestWithDetailAndCauseDoNotMutate(t *testing.T) {
	base := New(ErrCodeValidation, "bad input")
	detailed := base.WithDetail("field: comarca")

	assert.Empty(t, base.Detail)
	assert.Equal(t, "field: comarca", detailed.Detail)
	assert.Equal(t, base.Code, detailed.Code)
}

func TestHTTPStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatusForCode(ErrCodeInvalidArgument))
	assert.Equal(t, http.StatusNotFound, HTTPStatusForCode(ErrCodeDeadlineNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrCodeCalendarExhausted))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrorCode("NOPE")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeInvalidArgument))
	assert.True(t, IsClientError(ErrCodeDeadlineInvalid))
	assert.False(t, IsClientError(ErrCodeDatabaseError))
}

func TestGetCodeOnForeignError(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
}
