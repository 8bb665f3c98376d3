package services

import "time"

// Now is the clock behind share expiry and due-date windows. Tests replace it.
var Now = func() time.Time {
	return time.Now().UTC()
}
