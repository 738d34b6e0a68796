package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		status      BookingStatus
		active      bool
		cancellable bool
		rejectable  bool
	}{
		{StatusCreated, true, true, true},
		{StatusPending, true, true, true},
		{StatusApproved, true, true, false},
		{StatusRejected, false, false, false},
		{StatusCancelled, false, false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.active, tt.status.Active(), "%s active", tt.status)
		assert.Equal(t, tt.cancellable, tt.status.Cancellable(), "%s cancellable", tt.status)
		assert.Equal(t, tt.rejectable, tt.status.Rejectable(), "%s rejectable", tt.status)
	}
}

func TestStatusDisplayNames(t *testing.T) {
	for _, s := range []BookingStatus{StatusCreated, StatusPending, StatusApproved, StatusRejected, StatusCancelled} {
		assert.NotEmpty(t, s.DisplayName(), string(s))
		assert.NotEmpty(t, s.Description(), string(s))
	}
	assert.Equal(t, "WEIRD", BookingStatus("WEIRD").DisplayName())
}

func TestActiveStatusesMatchPredicate(t *testing.T) {
	for _, s := range ActiveStatuses {
		assert.True(t, s.Active())
	}
	assert.Len(t, ActiveStatuses, 3)
}

func TestSetPeriodCopiesBounds(t *testing.T) {
	p, err := PeriodByNumber(5)
	require.NoError(t, err)

	var b Booking
	b.SetPeriod(p)
	assert.Equal(t, 5, b.PeriodNumber)
	assert.Equal(t, "15:20", b.StartTime)
	assert.Equal(t, "16:40", b.EndTime)

	back, err := b.Period()
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestDateOnlyNormalizes(t *testing.T) {
	stamp := time.Date(2026, 9, 14, 17, 45, 12, 999, time.UTC)
	d := DateOnly(stamp)
	assert.Equal(t, "2026-09-14", FormatDate(d))

	asTime := time.Time(d)
	assert.Zero(t, asTime.Hour())
	assert.Zero(t, asTime.Minute())
}
