package leave

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveStatus_Transitions(t *testing.T) {
	for target, event := range map[LeaveStatus]string{
		StatusApproved:  EventApprove,
		StatusRejected:  EventReject,
		StatusCancelled: EventCancel,
	} {
		got, ok := StatusPending.EventTo(target)
		assert.True(t, ok, target)
		assert.Equal(t, event, got)
	}
	_, ok := StatusPending.EventTo(StatusPending)
	assert.False(t, ok)

	for _, s := range []LeaveStatus{StatusApproved, StatusRejected, StatusCancelled} {
		assert.True(t, s.IsFinal(), s)
		_, ok := s.EventTo(StatusPending)
		assert.False(t, ok, s)
	}
	assert.False(t, StatusPending.IsFinal())
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("approved")
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, s)

	_, ok = ParseStatus("Approved")
	assert.False(t, ok)
	_, ok = ParseStatus("archived")
	assert.False(t, ok)
}

func TestStatusMachine_PendingToApproved(t *testing.T) {
	m, err := NewStatusMachine("req-1", StatusPending)
	require.NoError(t, err)

	require.NoError(t, m.TransitionTo(StatusApproved))
	assert.Equal(t, StatusApproved, m.Current())
}

func TestStatusMachine_TerminalStatesRejectChanges(t *testing.T) {
	for _, from := range []LeaveStatus{StatusApproved, StatusRejected, StatusCancelled} {
		m, err := NewStatusMachine("req-1", from)
		require.NoError(t, err)

		err = m.TransitionTo(StatusPending)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStatusTransition))
		assert.Equal(t, from, m.Current())
	}
}

func TestStatusMachine_UnknownStatus(t *testing.T) {
	_, err := NewStatusMachine("req-1", LeaveStatus("archived"))
	assert.Error(t, err)
}
