package styles

import (
	"fmt"
	"math"
	"time"
)

// serialEpoch is day 0 of the serial scale before the +2 correction.  The
// correction accounts for Excel counting 1900-01-01 as day 1 and for the
// phantom 1900-02-29, so serials are effectively days since 1899-12-30.
var serialEpoch = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	serialCorrection = 2
	secondsPerDay    = 86400
	// maxSerial is one past 9999-12-31.
	maxSerial = 2_958_466
)

// TimeToSerial converts t to an Excel serial day number: whole days since
// 1899-12-30 plus the whole seconds of the day as a fraction.  Sub-second
// precision is dropped.
//
//	TimeToSerial(2017-12-02T13:30:00Z) == 43071.5625
func TimeToSerial(t time.Time) float64 {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	days := (midnight.Unix() - serialEpoch.Unix()) / secondsPerDay
	secs := t.Hour()*3600 + t.Minute()*60 + t.Second()
	return float64(days+serialCorrection) + float64(secs)/secondsPerDay
}

// SerialToTime converts an Excel serial day number to a UTC instant.  The
// fractional day is rounded to the nearest second; a fraction that rounds
// up to a full day rolls over to the next midnight.
func SerialToTime(serial float64) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("styles: SerialToTime: invalid value %v", serial)
	}
	if serial < 0 {
		return time.Time{}, fmt.Errorf("styles: SerialToTime: negative serial %v not supported", serial)
	}
	if serial > maxSerial {
		return time.Time{}, fmt.Errorf("styles: SerialToTime: serial %v exceeds maximum supported value %d", serial, maxSerial)
	}
	secs, rollover := serialToFracSec(serial)
	days := int(math.Floor(serial)) + rollover - serialCorrection
	return serialEpoch.AddDate(0, 0, days).Add(time.Duration(secs) * time.Second), nil
}

// serialToFracSec converts the fractional-day part of a serial to a
// whole-second count within the day (0–86399) plus a day rollover (0 or 1).
//
// A small epsilon is added before rounding so that values such as 0.5625
// stored as 0.56249999… still land on the intended second.
func serialToFracSec(serial float64) (fracSec int64, dayRollover int) {
	const roundEpsilon = 1e-9
	fracDay := serial - math.Floor(serial) + roundEpsilon
	secs := int64(math.Round(fracDay * secondsPerDay))
	if secs < 0 {
		secs = 0
	}
	return secs % secondsPerDay, int(secs / secondsPerDay)
}
