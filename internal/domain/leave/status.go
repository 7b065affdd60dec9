package leave

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

type LeaveStatus string

const (
	StatusPending   LeaveStatus = "pending"
	StatusApproved  LeaveStatus = "approved"
	StatusRejected  LeaveStatus = "rejected"
	StatusCancelled LeaveStatus = "cancelled"
)

// Events that move a request out of pending.
const (
	EventApprove = "approve"
	EventReject  = "reject"
	EventCancel  = "cancel"
)

// statekit state ids must be untyped strings.
const (
	statePending   = "pending"
	stateApproved  = "approved"
	stateRejected  = "rejected"
	stateCancelled = "cancelled"
)

var validTransitions = map[LeaveStatus]map[string]LeaveStatus{
	StatusPending: {
		EventApprove: StatusApproved,
		EventReject:  StatusRejected,
		EventCancel:  StatusCancelled,
	},
	StatusApproved:  {},
	StatusRejected:  {},
	StatusCancelled: {},
}

func init() {
	stateMap := map[string]LeaveStatus{
		statePending:   StatusPending,
		stateApproved:  StatusApproved,
		stateRejected:  StatusRejected,
		stateCancelled: StatusCancelled,
	}
	for fsmState, status := range stateMap {
		if fsmState != string(status) {
			panic(fmt.Sprintf("FSM state %q does not match LeaveStatus %q", fsmState, status))
		}
	}
}

// ParseStatus accepts any of the four statuses, case-sensitively.
func ParseStatus(s string) (LeaveStatus, bool) {
	status := LeaveStatus(s)
	_, ok := validTransitions[status]
	return status, ok
}

// IsFinal reports whether s has no outgoing transitions.
func (s LeaveStatus) IsFinal() bool {
	return len(validTransitions[s]) == 0
}

// EventTo returns the event that moves s to target, if there is one.
func (s LeaveStatus) EventTo(target LeaveStatus) (string, bool) {
	for event, to := range validTransitions[s] {
		if to == target {
			return event, true
		}
	}
	return "", false
}

type requestContext struct {
	RequestID string
}

// StatusMachine drives one leave request through its lifecycle.
type StatusMachine struct {
	interpreter *statekit.Interpreter[requestContext]
}

func NewStatusMachine(requestID string, current LeaveStatus) (*StatusMachine, error) {
	if _, ok := ParseStatus(string(current)); !ok {
		return nil, fmt.Errorf("unknown leave status %q", current)
	}

	builder := statekit.NewMachine[requestContext]("leave-request").
		WithInitial(statekit.StateID(current)).
		WithContext(requestContext{RequestID: requestID})

	builder.State(statePending).
		On(EventApprove).Target(stateApproved).
		On(EventReject).Target(stateRejected).
		On(EventCancel).Target(stateCancelled).
		Done()

	builder.State(stateApproved).Done()
	builder.State(stateRejected).Done()
	builder.State(stateCancelled).Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build leave status machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &StatusMachine{interpreter: interpreter}, nil
}

func (m *StatusMachine) Current() LeaveStatus {
	return LeaveStatus(m.interpreter.State().Value)
}

// TransitionTo moves the request to target or fails with an invalid
// status transition error.
func (m *StatusMachine) TransitionTo(target LeaveStatus) error {
	before := m.Current()
	event, ok := before.EventTo(target)
	if !ok {
		return NewInvalidStatusTransitionError(before, target)
	}

	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if m.Current() != target {
		return NewInvalidStatusTransitionError(before, target)
	}
	return nil
}
