package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoomHasSpace(t *testing.T) {
	tests := []struct {
		name string
		room Room
		want bool
	}{
		{name: "available with space", room: Room{Status: RoomAvailable, Capacity: 3, Occupied: 1}, want: true},
		{name: "available but full", room: Room{Status: RoomAvailable, Capacity: 3, Occupied: 3}, want: false},
		{name: "under maintenance", room: Room{Status: RoomMaintenance, Capacity: 3, Occupied: 0}, want: false},
		{name: "reserved", room: Room{Status: RoomReserved, Capacity: 2, Occupied: 0}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.room.HasSpace())
		})
	}
}

func TestRoomAllocationActive(t *testing.T) {
	assert.True(t, RoomAllocation{}.Active())

	vacated := time.Now()
	assert.False(t, RoomAllocation{VacatedAt: &vacated}.Active())
}

func TestCreateVisitorLogRequestValidate(t *testing.T) {
	valid := CreateVisitorLogRequest{
		HostelID:    "h1",
		VisitorName: "R. Menon",
		Relation:    "parent",
		VisitDate:   time.Now().AddDate(0, 0, 2),
	}
	assert.NoError(t, valid.Validate())

	req := valid
	req.VisitorName = ""
	assert.Error(t, req.Validate())

	req = valid
	req.VisitDate = time.Time{}
	assert.Error(t, req.Validate())
}
