package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("asha@school.edu"))
	assert.True(t, IsValidEmail("first.last+tag@sub.domain.org"))
	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("no-at-sign"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("spaces in@mail.com"))
}

func TestIsValidMobile(t *testing.T) {
	assert.True(t, IsValidMobile("9876543210"))
	assert.True(t, IsValidMobile("+919876543210"))
	assert.False(t, IsValidMobile("12345"))
	assert.False(t, IsValidMobile("98765432101234"))
	assert.False(t, IsValidMobile("98765abc10"))
}

func TestIsValidPincode(t *testing.T) {
	assert.True(t, IsValidPincode("560001"))
	assert.False(t, IsValidPincode("5600"))
	assert.False(t, IsValidPincode("5600011"))
	assert.False(t, IsValidPincode("56000a"))
}

func TestIsValidTimeOfDay(t *testing.T) {
	assert.True(t, IsValidTimeOfDay("00:00"))
	assert.True(t, IsValidTimeOfDay("09:30"))
	assert.True(t, IsValidTimeOfDay("23:59"))
	assert.False(t, IsValidTimeOfDay("24:00"))
	assert.False(t, IsValidTimeOfDay("9:30"))
	assert.False(t, IsValidTimeOfDay("12:60"))
	assert.False(t, IsValidTimeOfDay("noon"))
}
