// Package datetime implements Excel serial-date arithmetic
// (including the 1900 fictitious-leap-year quirk), calendar functions,
// and business-day counting.
package datetime

import "time"

var epoch = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
var marchFirst1900 = time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)

// SerialToTime converts an Excel serial date to a UTC time.Time. Serial
// 60 is the fictitious February 29, 1900, which time.Time cannot hold:
// time.Date normalizes it, so serial 60 comes back as 1900-03-01, the
// same date as serial 61.
func SerialToTime(serial float64) time.Time {
	days := int64(serial)
	frac := serial - float64(days)
	if days == 60 {
		t := time.Date(1900, 2, 29, 0, 0, 0, 0, time.UTC)
		return addFraction(t, frac)
	}
	correction := int64(0)
	if days >= 60 {
		correction = -1
	}
	delta := days + correction - 1
	t := epoch.AddDate(0, 0, int(delta))
	return addFraction(t, frac)
}

func addFraction(t time.Time, frac float64) time.Time {
	if frac <= 0 {
		return t
	}
	return t.Add(time.Duration(frac*24*3600*1e9) * time.Nanosecond)
}

// TimeToSerial converts a date to its whole-day Excel serial number; the
// time of day is dropped. It inverts SerialToTime for whole serials other
// than 60.
func TimeToSerial(t time.Time) float64 {
	if t.Year() == 1900 && t.Month() == 2 && t.Day() == 29 {
		return 60
	}
	daysSinceEpoch := int64(t.Sub(epoch).Hours() / 24)
	serial := daysSinceEpoch + 1
	if !t.Before(marchFirst1900) {
		serial++
	}
	return float64(serial)
}

// DateSerial builds the serial number for a (possibly out-of-range)
// year/month/day triple, normalizing via time.Date the way Excel's DATE
// function does (month 13 rolls into the next year, etc).
func DateSerial(year, month, day int) float64 {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return TimeToSerial(t)
}

// Weekday returns 0 (Sunday) .. 6 (Saturday) for serial, treating the
// fictitious day 60 as a Wednesday (Excel's own convention).
func Weekday(serial float64) int {
	if int64(serial) == 60 {
		return 3
	}
	return int(SerialToTime(serial).Weekday())
}

// IsWeekend reports whether serial falls on Saturday or Sunday.
func IsWeekend(serial float64) bool {
	w := Weekday(serial)
	return w == 0 || w == 6
}

// EDate adds months calendar-months to serial, clamping the day into the
// resulting month the way time.AddDate does not (Excel clamps to the
// last valid day instead of rolling into the next month).
func EDate(serial float64, months int) float64 {
	t := SerialToTime(serial)
	return TimeToSerial(addMonthsClamped(t, months))
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	totalMonths := int(m) - 1 + months
	newYear := y + totalMonths/12
	newMonth := totalMonths % 12
	if newMonth < 0 {
		newMonth += 12
		newYear--
	}
	lastDay := daysInMonth(newYear, newMonth+1)
	if d > lastDay {
		d = lastDay
	}
	return time.Date(newYear, time.Month(newMonth+1), d, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EoMonth returns the serial number of the last day of the month that is
// `months` calendar-months away from serial.
func EoMonth(serial float64, months int) float64 {
	t := SerialToTime(serial)
	y, m, _ := t.Date()
	totalMonths := int(m) - 1 + months
	newYear := y + totalMonths/12
	newMonth := totalMonths % 12
	if newMonth < 0 {
		newMonth += 12
		newYear--
	}
	lastDay := daysInMonth(newYear, newMonth+1)
	return TimeToSerial(time.Date(newYear, time.Month(newMonth+1), lastDay, 0, 0, 0, 0, time.UTC))
}

// DateDif implements the Y/M/D/MD/YM/YD unit forms. ok is false for an
// unrecognized unit or start > end.
func DateDif(startSerial, endSerial float64, unit string) (int, bool) {
	if startSerial > endSerial {
		return 0, false
	}
	start := SerialToTime(startSerial)
	end := SerialToTime(endSerial)
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	switch unit {
	case "Y":
		years := ey - sy
		if em < sm || (em == sm && ed < sd) {
			years--
		}
		return years, true
	case "M":
		months := (ey-sy)*12 + int(em) - int(sm)
		if ed < sd {
			months--
		}
		return months, true
	case "D":
		return int(end.Sub(start).Hours() / 24), true
	case "MD":
		days := ed - sd
		if days < 0 {
			prevMonth := int(em) - 1
			prevYear := ey
			if prevMonth == 0 {
				prevMonth = 12
				prevYear--
			}
			days += daysInMonth(prevYear, prevMonth)
		}
		return days, true
	case "YM":
		months := int(em) - int(sm)
		if ed < sd {
			months--
		}
		if months < 0 {
			months += 12
		}
		return months, true
	case "YD":
		anniversary := time.Date(ey, time.Month(sm), sd, 0, 0, 0, 0, time.UTC)
		if anniversary.After(end) {
			anniversary = time.Date(ey-1, time.Month(sm), sd, 0, 0, 0, 0, time.UTC)
		}
		return int(end.Sub(anniversary).Hours() / 24), true
	}
	return 0, false
}

// NetworkDays counts weekdays in [min(start,end), max(start,end)]
// excluding holidays, negated if start > end.
func NetworkDays(start, end float64, holidays []float64) int {
	negate := false
	if start > end {
		start, end = end, start
		negate = true
	}
	holidaySet := make(map[int64]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[int64(h)] = true
	}
	count := 0
	for d := int64(start); d <= int64(end); d++ {
		if IsWeekend(float64(d)) {
			continue
		}
		if holidaySet[d] {
			continue
		}
		count++
	}
	if negate {
		return -count
	}
	return count
}

// WorkDay steps `days` working days from start, skipping weekends and
// holidays; the direction is taken from the sign of days.
func WorkDay(start float64, days int, holidays []float64) float64 {
	holidaySet := make(map[int64]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[int64(h)] = true
	}
	step := int64(1)
	if days < 0 {
		step = -1
		days = -days
	}
	d := int64(start)
	for days > 0 {
		d += step
		if IsWeekend(float64(d)) || holidaySet[d] {
			continue
		}
		days--
	}
	return float64(d)
}

// WeekNum implements the week-of-year number for return types
// {1,2,11..17,21}. ok is false for any other return type.
func WeekNum(serial float64, returnType int) (int, bool) {
	if returnType == 21 {
		return isoWeek(serial), true
	}
	startDow, ok := weekStartDow(returnType)
	if !ok {
		return 0, false
	}
	t := SerialToTime(serial)
	yearStart := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	firstDow := int(yearStart.Weekday())
	offset := (firstDow - startDow + 7) % 7
	dayOfYear := int(t.Sub(yearStart).Hours()/24) + 1
	return (dayOfYear+offset-1)/7 + 1, true
}

// weekStartDow maps WEEKNUM return types to a Sunday=0..Saturday=6 start day.
func weekStartDow(returnType int) (int, bool) {
	switch returnType {
	case 1:
		return 0, true
	case 2:
		return 1, true
	case 11:
		return 1, true
	case 12:
		return 2, true
	case 13:
		return 3, true
	case 14:
		return 4, true
	case 15:
		return 5, true
	case 16:
		return 6, true
	case 17:
		return 0, true
	}
	return 0, false
}

func isoWeek(serial float64) int {
	_, week := SerialToTime(serial).ISOWeek()
	return week
}
