package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		err := New(CodeInvalidValue, "day out of range")
		assert.True(t, HasCode(err, CodeInvalidValue))
		assert.False(t, HasCode(err, CodeOverflow))
	})

	t.Run("wrapped cause keeps inner code reachable", func(t *testing.T) {
		inner := New(CodeOverflow, "year exceeds supported range")
		outer := Wrap(inner, CodeBadRequest, "could not shift date")
		assert.True(t, HasCode(outer, CodeBadRequest))
		assert.True(t, HasCode(outer, CodeOverflow))
		assert.False(t, HasCode(outer, CodeNotFound))
	})

	t.Run("wrapped through fmt.Errorf", func(t *testing.T) {
		inner := New(CodeUnsupportedField, "no such field")
		err := fmt.Errorf("service: %w", inner)
		assert.True(t, HasCode(err, CodeUnsupportedField))
	})

	t.Run("plain error has no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})

	t.Run("nil", func(t *testing.T) {
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeInvalidValue, CodeOf(New(CodeInvalidValue, "bad")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("unclassified")))

	outer := Wrap(New(CodeOverflow, "inner"), CodeBadRequest, "outer")
	assert.Equal(t, CodeBadRequest, CodeOf(outer), "outermost code wins")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUnavailable, "zone resolver unreachable")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "zone resolver unreachable: connection refused", err.Error())
	assert.Equal(t, "zone resolver unreachable", err.Message())
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidValue:     http.StatusBadRequest,
		CodeUnsupportedField: http.StatusBadRequest,
		CodeUnsupportedUnit:  http.StatusBadRequest,
		CodeOverflow:         http.StatusBadRequest,
		CodeBadRequest:       http.StatusBadRequest,
		CodeUnauthorized:     http.StatusUnauthorized,
		CodeForbidden:        http.StatusForbidden,
		CodeNotFound:         http.StatusNotFound,
		CodeTooManyRequests:  http.StatusTooManyRequests,
		CodeUnavailable:      http.StatusServiceUnavailable,
		CodeInternal:         http.StatusInternalServerError,
		Code("unknown"):      http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
