// Package apperror carries the error kinds the attendance and leave services
// return, so transports can map them without inspecting concrete types.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindEmployeeNotFound
	KindValidation
	KindAlreadyClockedIn
	KindAlreadyClockedOut
	KindNotClockedIn
	KindNoClockInFound
	KindDuplicateRecord
	KindMultipleRecordsFound
	KindInsufficientLeaveDays
	KindConflictingLeaveRequest
	KindNotFound
	KindInvalidStatusTransition
	KindUnauthorized
	KindForbidden
)

var kindCodes = map[Kind]string{
	KindUnknown:                 "INTERNAL_SERVER_ERROR",
	KindEmployeeNotFound:        "EMPLOYEE_NOT_FOUND",
	KindValidation:              "VALIDATION_ERROR",
	KindAlreadyClockedIn:        "ALREADY_CLOCKED_IN",
	KindAlreadyClockedOut:       "ALREADY_CLOCKED_OUT",
	KindNotClockedIn:            "NOT_CLOCKED_IN",
	KindNoClockInFound:          "NO_CLOCK_IN_FOUND",
	KindDuplicateRecord:         "DUPLICATE_RECORD",
	KindMultipleRecordsFound:    "MULTIPLE_RECORDS_FOUND",
	KindInsufficientLeaveDays:   "INSUFFICIENT_LEAVE_DAYS",
	KindConflictingLeaveRequest: "CONFLICTING_LEAVE_REQUEST",
	KindNotFound:                "NOT_FOUND",
	KindInvalidStatusTransition: "INVALID_STATUS_TRANSITION",
	KindUnauthorized:            "UNAUTHORIZED",
	KindForbidden:               "FORBIDDEN",
}

// Code returns the stable machine-readable code of the kind.
func (k Kind) Code() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return kindCodes[KindUnknown]
}

func (k Kind) String() string {
	return k.Code()
}

// Error is an error tagged with a Kind and an optional structured payload.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	Err     error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithDetails returns a copy of e carrying the given payload.
func (e *Error) WithDetails(details map[string]string) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap returns a copy of e that also wraps cause.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an *Error of the same kind, so sentinel
// values match copies that carry a payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
