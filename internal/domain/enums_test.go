package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimesheetStatusCanTransition(t *testing.T) {
	assert.True(t, TimesheetDraft.CanTransition(TimesheetSubmitted))
	assert.True(t, TimesheetSubmitted.CanTransition(TimesheetApproved))
	assert.True(t, TimesheetSubmitted.CanTransition(TimesheetDenied))
	assert.True(t, TimesheetDenied.CanTransition(TimesheetDraft))

	// Approved is terminal.
	assert.False(t, TimesheetApproved.CanTransition(TimesheetDraft))
	assert.False(t, TimesheetApproved.CanTransition(TimesheetSubmitted))
	assert.False(t, TimesheetApproved.CanTransition(TimesheetDenied))

	// No skipping or reversing other edges.
	assert.False(t, TimesheetDraft.CanTransition(TimesheetApproved))
	assert.False(t, TimesheetDraft.CanTransition(TimesheetDenied))
	assert.False(t, TimesheetSubmitted.CanTransition(TimesheetDraft))
	assert.False(t, TimesheetDenied.CanTransition(TimesheetSubmitted))
	assert.False(t, TimesheetDenied.CanTransition(TimesheetApproved))
}

func TestTimesheetFrozen(t *testing.T) {
	assert.False(t, (&Timesheet{Status: TimesheetDraft}).Frozen())
	assert.True(t, (&Timesheet{Status: TimesheetSubmitted}).Frozen())
	assert.True(t, (&Timesheet{Status: TimesheetApproved}).Frozen())
	assert.True(t, (&Timesheet{Status: TimesheetDenied}).Frozen())
}
