package value

import (
	"strings"
	"time"
)

// KeyTimeLayout is the end date layout embedded in notification keys.
const KeyTimeLayout = "2006-01-02T15:04:05.000Z"

// NotificationKey identifies one notified offer as "<title>_<end date>".
// Two offers with the same title and end date are the same notification.
type NotificationKey string

func NewNotificationKey(title string, endDate *time.Time) NotificationKey {
	var end string
	if endDate != nil {
		end = endDate.UTC().Format(KeyTimeLayout)
	}

	return NotificationKey(title + "_" + end)
}

func (k NotificationKey) String() string {
	return string(k)
}

// EndDate parses the segment after the last underscore.
func (k NotificationKey) EndDate() (time.Time, bool) {
	idx := strings.LastIndex(string(k), "_")
	if idx < 0 {
		return time.Time{}, false
	}

	raw := string(k)[idx+1:]

	if t, err := time.Parse(KeyTimeLayout, raw); err == nil {
		return t, true
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}

	return time.Time{}, false
}

// Expired reports whether the embedded end date lies more than maxAgeDays
// whole days before now. Keys without a parsable date never expire.
func (k NotificationKey) Expired(now time.Time, maxAgeDays int) bool {
	end, ok := k.EndDate()
	if !ok {
		return false
	}

	return int(now.Sub(end)/(24*time.Hour)) > maxAgeDays
}
