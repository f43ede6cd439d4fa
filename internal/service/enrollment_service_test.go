package service

import (
	"errors"
	"testing"

	"github.com/nucampus/campus-backend/internal/model"
)

func TestEvaluateDecision(t *testing.T) {
	tests := []struct {
		name      string
		current   model.RequestStatus
		decision  model.RequestStatus
		wantApply bool
		wantErr   error
	}{
		{
			name:      "pending approve applies",
			current:   model.RequestStatusPending,
			decision:  model.RequestStatusApproved,
			wantApply: true,
		},
		{
			name:      "pending decline applies",
			current:   model.RequestStatusPending,
			decision:  model.RequestStatusDeclined,
			wantApply: true,
		},
		{
			name:      "repeat approve re-runs to heal partial failures",
			current:   model.RequestStatusApproved,
			decision:  model.RequestStatusApproved,
			wantApply: true,
		},
		{
			name:     "repeat decline is a no-op",
			current:  model.RequestStatusDeclined,
			decision: model.RequestStatusDeclined,
		},
		{
			name:     "decline after approve conflicts",
			current:  model.RequestStatusApproved,
			decision: model.RequestStatusDeclined,
			wantErr:  ErrRequestSettled,
		},
		{
			name:     "approve after decline conflicts",
			current:  model.RequestStatusDeclined,
			decision: model.RequestStatusApproved,
			wantErr:  ErrRequestSettled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apply, err := evaluateDecision(tt.current, tt.decision)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("evaluateDecision(%s, %s) err = %v, want %v", tt.current, tt.decision, err, tt.wantErr)
			}
			if apply != tt.wantApply {
				t.Fatalf("evaluateDecision(%s, %s) apply = %v, want %v", tt.current, tt.decision, apply, tt.wantApply)
			}
		})
	}
}
