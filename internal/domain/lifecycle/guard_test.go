package lifecycle

import (
	"testing"

	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestCanEdit(t *testing.T) {
	assert.True(t, CanEdit(enum.DocumentStatusDraft))
	for _, s := range []enum.DocumentStatus{
		enum.DocumentStatusPresented,
		enum.DocumentStatusAccepted,
		enum.DocumentStatusRejected,
		enum.DocumentStatusPaid,
	} {
		assert.False(t, CanEdit(s), s.String())
		assert.True(t, apperror.IsLocked(EnsureEditable(s)), s.String())
	}
	assert.NoError(t, EnsureEditable(enum.DocumentStatusDraft))
}

func TestTransition(t *testing.T) {
	const (
		draft     = enum.DocumentStatusDraft
		presented = enum.DocumentStatusPresented
		accepted  = enum.DocumentStatusAccepted
		rejected  = enum.DocumentStatusRejected
		paid      = enum.DocumentStatusPaid
	)

	tests := []struct {
		from, to enum.DocumentStatus
		check    func(error) bool
	}{
		{draft, presented, nil},
		{draft, draft, nil},
		{presented, accepted, nil},
		{presented, rejected, nil},
		{presented, paid, nil},
		{presented, draft, nil},
		{presented, presented, nil},
		{draft, accepted, isConflict},
		{draft, paid, isConflict},
		{accepted, presented, apperror.IsLocked},
		{rejected, draft, apperror.IsLocked},
		{paid, paid, apperror.IsLocked},
		{draft, enum.DocumentStatus(42), apperror.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			err := Transition(tt.from, tt.to)
			if tt.check == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tt.check(err), "unexpected error %v", err)
		})
	}
}

func isConflict(err error) bool {
	return err != nil && apperror.GetAppError(err).Code == 409
}
