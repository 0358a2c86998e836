package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_TimeSlot_Matches(t *testing.T) {
	tests := []struct {
		tagged TimeSlot
		target TimeSlot
		want   bool
	}{
		{SlotMorning, SlotMorning, true},
		{SlotEvening, SlotEvening, true},
		{SlotMorning, SlotEvening, false},
		{SlotEvening, SlotMorning, false},
		{SlotBoth, SlotMorning, true},
		{SlotBoth, SlotEvening, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tagged.Matches(tt.target), "%s vs %s", tt.tagged, tt.target)
	}
}

func Test_Assignment_DistinctAssignees(t *testing.T) {
	a := Assignment{
		Tasks: []Task{
			{TaskID: "t1", AssignedTo: PersonnelRef{PersonnelID: "p1", Name: "Doe"}},
			{TaskID: "t2", AssignedTo: PersonnelRef{PersonnelID: "p2", Name: "Roe"}},
			{TaskID: "t3", AssignedTo: PersonnelRef{PersonnelID: "p1", Name: "Doe"}},
			{TaskID: "t4"}, // unassigned task carries no reference
		},
	}

	assignees := a.DistinctAssignees()
	assert.Equal(t, []PersonnelRef{
		{PersonnelID: "p1", Name: "Doe"},
		{PersonnelID: "p2", Name: "Roe"},
	}, assignees)
}

func Test_Assignment_PendingTaskCount(t *testing.T) {
	a := Assignment{
		Tasks: []Task{
			{TaskID: "t1", AssignedTo: PersonnelRef{PersonnelID: "p1"}, Completed: true},
			{TaskID: "t2", AssignedTo: PersonnelRef{PersonnelID: "p1"}},
			{TaskID: "t3", AssignedTo: PersonnelRef{PersonnelID: "p1"}},
			{TaskID: "t4", AssignedTo: PersonnelRef{PersonnelID: "p2"}},
		},
	}

	assert.Equal(t, 2, a.PendingTaskCount("p1"))
	assert.Equal(t, 1, a.PendingTaskCount("p2"))
	assert.Equal(t, 0, a.PendingTaskCount("p3"))
}
