package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationStatusTransitions(t *testing.T) {
	all := []RegistrationStatus{StatusPending, StatusApproved, StatusRejected, StatusActive, StatusInactive}

	for _, from := range all {
		assert.True(t, from.CanTransitionTo(StatusApproved), "%s -> approved", from)
		assert.True(t, from.CanTransitionTo(StatusRejected), "%s -> rejected", from)
	}

	tests := []struct {
		from, to RegistrationStatus
		want     bool
	}{
		{StatusPending, StatusActive, false},
		{StatusPending, StatusInactive, false},
		{StatusRejected, StatusActive, false},
		{StatusRejected, StatusPending, true},
		{StatusApproved, StatusActive, true},
		{StatusActive, StatusInactive, true},
		{StatusInactive, StatusActive, true},
		{StatusActive, StatusPending, false},
		{StatusActive, "archived", false},
		{"archived", "archived", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestRegistrationStatusCanSignIn(t *testing.T) {
	assert.True(t, StatusApproved.CanSignIn())
	assert.True(t, StatusActive.CanSignIn())
	assert.False(t, StatusPending.CanSignIn())
	assert.False(t, StatusRejected.CanSignIn())
	assert.False(t, StatusInactive.CanSignIn())
}
