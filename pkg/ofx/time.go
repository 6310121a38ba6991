package ofx

import (
	"fmt"
	"time"
)

// FormatTime renders a timestamp in OFX form: YYYYMMDDhhmmss followed
// by the UTC offset in hours in brackets, e.g. "20241127120347[-3]".
// Timestamps without an offset get the literal "[0:GMT]" fallback.
func FormatTime(t time.Time) string {
	stamp := t.Format("20060102150405")
	_, offset := t.Zone()
	if offset == 0 {
		return stamp + "[0:GMT]"
	}
	return fmt.Sprintf("%s[%d]", stamp, offset/3600)
}
