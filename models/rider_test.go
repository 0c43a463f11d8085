package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionRider(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{RiderStatusPending, RiderStatusActive, true},
		{RiderStatusPending, RiderStatusRejected, true},
		{RiderStatusActive, RiderStatusOnDelivery, true},
		{RiderStatusOnDelivery, RiderStatusActive, true},
		{RiderStatusPending, RiderStatusOnDelivery, false},
		{RiderStatusRejected, RiderStatusActive, false},
		{RiderStatusRejected, RiderStatusOnDelivery, false},
		{RiderStatusActive, RiderStatusPending, false},
		{RiderStatusActive, RiderStatusRejected, false},
		{"", RiderStatusActive, false},
		{RiderStatusPending, "approved", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransitionRider(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
