package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByKind(t *testing.T) {
	sentinel := New(KindInsufficientLeaveDays, "insufficient leave days")
	withPayload := sentinel.WithDetails(map[string]string{"required": "6", "available": "5"})

	assert.True(t, errors.Is(withPayload, sentinel))
	assert.False(t, errors.Is(withPayload, New(KindNotFound, "not found")))
	assert.Nil(t, sentinel.Details, "sentinel must not be mutated")
}

func TestError_WrappedChain(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("clock in: %w", New(KindDuplicateRecord, "duplicate").Wrap(cause))

	assert.Equal(t, KindDuplicateRecord, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", KindOf(nil).Code())
}

func TestKind_Code(t *testing.T) {
	cases := map[Kind]string{
		KindAlreadyClockedIn:        "ALREADY_CLOCKED_IN",
		KindMultipleRecordsFound:    "MULTIPLE_RECORDS_FOUND",
		KindInvalidStatusTransition: "INVALID_STATUS_TRANSITION",
		Kind(999):                   "INTERNAL_SERVER_ERROR",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.Code())
	}
}
