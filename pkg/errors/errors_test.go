package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			err:      New(CodeInvalidNodeID, "dangling target"),
			expected: "[INVALID_NODE_ID] dangling target",
		},
		{
			name:     "with underlying error",
			err:      Wrap(CodeSchemaValidation, "id column missing", errors.New("column index 0 not found")),
			expected: "[SCHEMA_VALIDATION] id column missing: column index 0 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := Wrap(CodePropertyTypeMismatch, "type mismatch", underlying)

	unwrapped := err.Unwrap()
	assert.Equal(t, underlying, unwrapped)
}

func TestAppError_Is(t *testing.T) {
	err1 := New(CodeInvalidNodeID, "error 1")
	err2 := New(CodeInvalidNodeID, "error 2")
	err3 := New(CodeSchemaValidation, "error 3")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidNodeID, "target %d not in id map", 99)
	assert.Equal(t, "[INVALID_NODE_ID] target 99 not in id map", err.Error())
}

func TestIsInvalidNodeID(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "invalid node id",
			err:      ErrInvalidNodeID,
			expected: true,
		},
		{
			name:     "wrapped invalid node id",
			err:      Wrap(CodeInvalidNodeID, "dangling", errors.New("target 99")),
			expected: true,
		},
		{
			name:     "other error",
			err:      ErrSchemaValidation,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsInvalidNodeID(tt.err))
		})
	}
}

func TestIsSchemaValidation(t *testing.T) {
	assert.True(t, IsSchemaValidation(ErrSchemaValidation))
	assert.False(t, IsSchemaValidation(ErrInvalidNodeID))
}

func TestIsTerminated(t *testing.T) {
	assert.True(t, IsTerminated(ErrTerminated))
	assert.False(t, IsTerminated(ErrTaskError))
}

func TestIsTaskError(t *testing.T) {
	assert.True(t, IsTaskError(ErrTaskError))
	assert.False(t, IsTaskError(ErrTerminated))
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeInvalidNodeID, "dangling"),
			expected: CodeInvalidNodeID,
		},
		{
			name:     "wrapped app error",
			err:      Wrap(CodeSchemaValidation, "bad schema", errors.New("inner")),
			expected: CodeSchemaValidation,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: CodeUnknown,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCode(tt.err))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeInvalidNodeID, "target 99 missing"),
			expected: "target 99 missing",
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: "standard error",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorMessage(tt.err))
		})
	}
}
