package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Mobile number pattern - 10 digits with optional +country prefix
	MobilePattern = `^(\+\d{1,3})?\d{10}$`

	// Pincode pattern - 6 digits
	PincodePattern = `^\d{6}$`

	// Time-of-day pattern - 24h HH:MM
	TimePattern = `^([01]\d|2[0-3]):[0-5]\d$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email   *regexp.Regexp
	Mobile  *regexp.Regexp
	Pincode *regexp.Regexp
	Time    *regexp.Regexp
}{
	Email:   regexp.MustCompile(EmailPattern),
	Mobile:  regexp.MustCompile(MobilePattern),
	Pincode: regexp.MustCompile(PincodePattern),
	Time:    regexp.MustCompile(TimePattern),
}

// IsValidEmail reports whether s looks like an email address
func IsValidEmail(s string) bool {
	return CompiledPatterns.Email.MatchString(s)
}

// IsValidMobile reports whether s is a well-formed mobile number
func IsValidMobile(s string) bool {
	return CompiledPatterns.Mobile.MatchString(s)
}

// IsValidPincode reports whether s is a well-formed postal pincode
func IsValidPincode(s string) bool {
	return CompiledPatterns.Pincode.MatchString(s)
}

// IsValidTimeOfDay reports whether s is a 24h HH:MM time
func IsValidTimeOfDay(s string) bool {
	return CompiledPatterns.Time.MatchString(s)
}
