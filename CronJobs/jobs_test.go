package CronJobs

import (
	"testing"

	"Garrison/Details"
	"Garrison/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_cronSpecForTime(t *testing.T) {
	tests := []struct {
		hhmm    string
		want    string
		wantErr bool
	}{
		{hhmm: "07:00", want: "0 0 7 * * *"},
		{hhmm: "19:30", want: "0 30 19 * * *"},
		{hhmm: "00:00", want: "0 0 0 * * *"},
		{hhmm: "23:59", want: "0 59 23 * * *"},
		{hhmm: "24:00", wantErr: true},
		{hhmm: "12:60", wantErr: true},
		{hhmm: "noon", wantErr: true},
		{hhmm: "7", wantErr: true},
		{hhmm: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.hhmm, func(t *testing.T) {
			got, err := cronSpecForTime(tt.hhmm)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_NewDetailScheduler_InvalidTimezone(t *testing.T) {
	_, err := NewDetailScheduler(&Details.Dispatcher{}, "Mars/Olympus_Mons", "07:00", "19:00")
	require.Error(t, err)
}

func Test_DetailScheduler_StartRejectsBadTimes(t *testing.T) {
	s, err := NewDetailScheduler(&Details.Dispatcher{}, "UTC", "7am", "19:00")
	require.NoError(t, err)
	require.Error(t, s.Start())

	s, err = NewDetailScheduler(&Details.Dispatcher{}, "UTC", "07:00", "25:00")
	require.NoError(t, err)
	require.Error(t, s.Start())
}

func Test_DetailScheduler_UpdateSchedule(t *testing.T) {
	s, err := NewDetailScheduler(&Details.Dispatcher{}, "UTC", "07:00", "19:00")
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	require.NoError(t, s.UpdateSchedule(Models.SlotMorning, "06:30"))
	assert.Equal(t, "06:30", s.morningTime)

	require.Error(t, s.UpdateSchedule(Models.SlotMorning, "around six"))
	require.Error(t, s.UpdateSchedule(Models.SlotBoth, "06:30"))
}
