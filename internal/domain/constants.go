package domain

// Default configuration values
const (
	DefaultOverstayThresholdHours = 6
	DefaultSweepIntervalMinutes   = 3
)

// Business validation constants
const (
	MinNumberPlateLength = 3
	MaxNumberPlateLength = 10
	MaxNotesLength       = 500
	MaxReasonLength      = 500

	MinPageLimit     = 1
	MaxPageLimit     = 100
	DefaultPageLimit = 20
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Bound for hourly billing: elapsed time is rounded up to whole hours
const MinutesPerHour = 60
