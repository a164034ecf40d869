package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hypnos-booking/internal/data/entity"
)

const (
	secondsPerDay = 24 * 60 * 60

	// maxBookingYear is the last year a DATE column round-trips as DD/MM/YYYY.
	maxBookingYear = 9999
)

var (
	ErrInvalidDateFormat        = errors.New("invalid date format, expected DD/MM/YYYY")
	ErrInvalidDateRange         = errors.New("the submitted period is not valid")
	ErrDateRangeConflict        = errors.New("the requested period is not free; please choose a new period")
	ErrCancellationWindowClosed = errors.New("cancellation is no longer possible")
	ErrBookingAlreadyCancelled  = errors.New("booking is already cancelled")
)

// CancellationWindowError reports how many days were left before the stay.
type CancellationWindowError struct {
	LeadDays int
}

func (e *CancellationWindowError) Error() string {
	return fmt.Sprintf("cancellation is no longer possible: the reservation takes effect in fewer than %d day(s)", e.LeadDays)
}

func (e *CancellationWindowError) Is(target error) bool {
	return target == ErrCancellationWindowClosed
}

// ParseBookingDate reads a DD/MM/YYYY calendar date. The result is the date
// at midnight UTC, the same shape a DATE column scans into.
func ParseBookingDate(raw string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}

	var nums [3]int
	for i, part := range parts {
		if part == "" || strings.IndexFunc(part, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	if year < 1 || year > maxBookingYear || month < 1 || month > 12 || day < 1 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}

	// time.Date normalizes 31/02 into March; reject instead of rolling over.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}

	return t, nil
}

// CalendarDate drops the clock part of t, keeping the date as seen in t's zone.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar date in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return CalendarDate(now.In(loc))
}

// DayDiff is the number of calendar days from "from" to "to". It counts in
// Unix seconds since a time.Duration overflows past roughly 292 years.
func DayDiff(from, to time.Time) int {
	return int((CalendarDate(to).Unix() - CalendarDate(from).Unix()) / secondsPerDay)
}

// ParseBookingRange parses both ends of a proposal and returns its length in
// days. A range that does not move forward is ErrInvalidDateRange.
func ParseBookingRange(rawStart, rawEnd string) (start, end time.Time, days int, err error) {
	start, err = ParseBookingDate(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	end, err = ParseBookingDate(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}

	days = DayDiff(start, end)
	if days <= 0 {
		return time.Time{}, time.Time{}, 0, ErrInvalidDateRange
	}

	return start, end, days, nil
}

// IsDisjoint reports whether [start, end] lies strictly before or strictly
// after the booking b. Sharing an endpoint date is not disjoint.
func IsDisjoint(start, end time.Time, b *entity.Booking) bool {
	s, e := CalendarDate(start), CalendarDate(end)
	bs, be := CalendarDate(b.StartDate), CalendarDate(b.EndDate)

	before := s.Before(bs) && e.Before(bs) && e.Before(be)
	after := s.After(be) && e.After(be) && s.After(bs)
	return before || after
}

// CheckAvailability fails with ErrDateRangeConflict when any active booking
// is not disjoint from [start, end]. Cancelled bookings are ignored.
func CheckAvailability(start, end time.Time, existing []*entity.Booking) error {
	for _, b := range existing {
		if b == nil || b.IsDeleted {
			continue
		}
		if !IsDisjoint(start, end, b) {
			return ErrDateRangeConflict
		}
	}
	return nil
}

// ValidateCancellation permits cancelling when the stay starts at least
// minLeadDays after today.
func ValidateCancellation(start, today time.Time, minLeadDays int) error {
	lead := DayDiff(today, start)
	if lead < minLeadDays {
		return &CancellationWindowError{LeadDays: lead}
	}
	return nil
}
