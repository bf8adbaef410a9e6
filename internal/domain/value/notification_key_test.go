package value_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"epic_notifier/internal/domain/value"
)

func TestNewNotificationKey(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	end := time.Date(2025, 1, 9, 16, 0, 0, 0, time.UTC)

	rq.Equal(value.NotificationKey("Hades_2025-01-09T16:00:00.000Z"), value.NewNotificationKey("Hades", &end))
	rq.Equal(value.NotificationKey("Hades_"), value.NewNotificationKey("Hades", nil))

	ist := end.In(time.FixedZone("IST", 5*3600+1800))
	rq.Equal(value.NewNotificationKey("Hades", &end), value.NewNotificationKey("Hades", &ist))
}

func TestNotificationKeyEndDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  value.NotificationKey
		want time.Time
		ok   bool
	}{
		{
			name: "millisecond layout",
			key:  "Some_Game_With_Underscores_2025-01-09T16:00:00.000Z",
			want: time.Date(2025, 1, 9, 16, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "rfc3339",
			key:  "Game_2025-01-09T16:00:00Z",
			want: time.Date(2025, 1, 9, 16, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{name: "empty end date", key: "Game_"},
		{name: "python none", key: "Game_None"},
		{name: "no separator", key: "Game"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)

			got, ok := tt.key.EndDate()
			rq.Equal(tt.ok, ok)

			if tt.ok {
				rq.True(tt.want.Equal(got))
			}
		})
	}
}

func TestNotificationKeyExpired(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	fresh := value.NewNotificationKey("Fresh", ptr(now.Add(-10*24*time.Hour)))
	boundary := value.NewNotificationKey("Boundary", ptr(now.Add(-30*24*time.Hour-23*time.Hour)))
	old := value.NewNotificationKey("Old", ptr(now.Add(-31*24*time.Hour)))
	future := value.NewNotificationKey("Future", ptr(now.Add(7*24*time.Hour)))

	rq.False(fresh.Expired(now, 30))
	rq.False(boundary.Expired(now, 30))
	rq.True(old.Expired(now, 30))
	rq.False(future.Expired(now, 30))
	rq.False(value.NotificationKey("Broken_not-a-date").Expired(now, 30))
}

func ptr(t time.Time) *time.Time {
	return &t
}
