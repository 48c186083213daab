package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/wellpath/internal/constants"
)

// TimeSlot is a coarse bucket of the day used for grouping and rule branching.
type TimeSlot uint8

const (
	SlotMorning TimeSlot = iota + 1
	SlotAfternoon
	SlotEvening
	SlotNight
)

// TimeSlots lists every slot in chronological order starting from the morning.
var TimeSlots = []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

var (
	morningStart   = mustClockMinutes(constants.MorningStart)
	afternoonStart = mustClockMinutes(constants.AfternoonStart)
	eveningStart   = mustClockMinutes(constants.EveningStart)
	nightStart     = mustClockMinutes(constants.NightStart)
)

func (s TimeSlot) String() string {
	switch s {
	case SlotMorning:
		return "morning"
	case SlotAfternoon:
		return "afternoon"
	case SlotEvening:
		return "evening"
	case SlotNight:
		return "night"
	}
	return fmt.Sprintf("slot(%d)", uint8(s))
}

// Valid reports whether s is one of the declared slots.
func (s TimeSlot) Valid() bool {
	return s >= SlotMorning && s <= SlotNight
}

// Range returns the slot's boundaries as HH:MM strings. The end is exclusive.
func (s TimeSlot) Range() (start, end string) {
	switch s {
	case SlotMorning:
		return constants.MorningStart, constants.AfternoonStart
	case SlotAfternoon:
		return constants.AfternoonStart, constants.EveningStart
	case SlotEvening:
		return constants.EveningStart, constants.NightStart
	case SlotNight:
		return constants.NightStart, constants.MorningStart
	}
	return "", ""
}

// Contains reports whether the HH:MM time falls inside the slot.
func (s TimeSlot) Contains(hhmm string) bool {
	slot, err := SlotForTime(hhmm)
	return err == nil && slot == s
}

// SlotForTime derives the slot for a HH:MM clock time.
func SlotForTime(hhmm string) (TimeSlot, error) {
	m, err := ClockMinutes(hhmm)
	if err != nil {
		return 0, err
	}
	switch {
	case m >= morningStart && m < afternoonStart:
		return SlotMorning, nil
	case m >= afternoonStart && m < eveningStart:
		return SlotAfternoon, nil
	case m >= eveningStart && m < nightStart:
		return SlotEvening, nil
	default:
		return SlotNight, nil
	}
}

// ParseTimeSlot maps a slot name back to its value.
func ParseTimeSlot(s string) (TimeSlot, error) {
	for _, slot := range TimeSlots {
		if slot.String() == s {
			return slot, nil
		}
	}
	return 0, fmt.Errorf("unknown time slot %q", s)
}

func (s TimeSlot) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid time slot %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *TimeSlot) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeSlot(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ClockMinutes parses a HH:MM string into minutes from midnight.
func ClockMinutes(hhmm string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClockMinutes renders minutes from midnight as HH:MM, wrapping at 24h.
func FormatClockMinutes(m int) string {
	m = ((m % (24 * 60)) + 24*60) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func mustClockMinutes(hhmm string) int {
	m, err := ClockMinutes(hhmm)
	if err != nil {
		panic(err)
	}
	return m
}
