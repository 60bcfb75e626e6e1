// Package lifecycle decides when a document may be edited and which
// status changes are allowed.
//
//	draft -> presented -> accepted | rejected | paid
//	presented -> draft (reopen)
package lifecycle

import (
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/pkg/apperror"
)

var transitions = map[enum.DocumentStatus][]enum.DocumentStatus{
	enum.DocumentStatusDraft: {enum.DocumentStatusPresented},
	enum.DocumentStatusPresented: {
		enum.DocumentStatusAccepted,
		enum.DocumentStatusRejected,
		enum.DocumentStatusPaid,
		enum.DocumentStatusDraft,
	},
}

// CanEdit reports whether line items and pricing may be changed
func CanEdit(status enum.DocumentStatus) bool {
	return status == enum.DocumentStatusDraft
}

// IsTerminal reports whether no further transitions are possible
func IsTerminal(status enum.DocumentStatus) bool {
	switch status {
	case enum.DocumentStatusAccepted, enum.DocumentStatusRejected, enum.DocumentStatusPaid:
		return true
	}
	return false
}

// EnsureEditable returns a locked-document error unless status is draft
func EnsureEditable(status enum.DocumentStatus) error {
	if !CanEdit(status) {
		return apperror.NewLockedDocumentError(status)
	}
	return nil
}

// Transition validates a status-only change from one status to another.
// Staying in the same non-terminal status is a no-op.
func Transition(from, to enum.DocumentStatus) error {
	if !to.IsValid() {
		return apperror.NewFieldError("status", "is not a known status")
	}
	if IsTerminal(from) {
		return apperror.NewLockedDocumentError(from)
	}
	if from == to {
		return nil
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return apperror.NewInvalidTransitionError(from, to)
}
