// Package validate holds the structural validators that confirm a
// regex-matched substring is a plausible instance of its PII type. All
// functions are pure and total: malformed input returns false, never an
// error or a panic.
package validate

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// IsValidCreditCard reports whether s is a plausible card number: 13-19
// digits after stripping spaces and dashes, not all one digit, and passing
// the Luhn checksum.
func IsValidCreditCard(s string) bool {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		if r == ' ' || r == '-' {
			return -1
		}
		return 'x' // poison: any other character invalidates below
	}, s)
	if strings.ContainsRune(digits, 'x') {
		return false
	}
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	allSame := true
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// IsValidSSN reports whether s is a plausible AAA-GG-SSSS Social Security
// Number: area not 000, 666, or 900-999; group not 00; serial not 0000.
func IsValidSSN(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 3 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return false
	}
	for _, p := range parts {
		for i := 0; i < len(p); i++ {
			if p[i] < '0' || p[i] > '9' {
				return false
			}
		}
	}
	area := parts[0]
	if area == "000" || area == "666" || area[0] == '9' {
		return false
	}
	if parts[1] == "00" {
		return false
	}
	if parts[2] == "0000" {
		return false
	}
	return true
}

// IsValidEmail reports whether s has a structurally plausible
// local@domain.tld shape. The local part may not start or end with a dot or
// contain consecutive dots; the domain may not start or end with a dot or
// hyphen.
func IsValidEmail(s string) bool {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]

	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false
	}
	dot := strings.LastIndexByte(domain, '.')
	if dot <= 0 || len(domain)-dot-1 < 2 {
		return false
	}
	return true
}

// IsValidPhone reports whether s parses as a valid phone number for the
// given default region, falling back to an international parse when the
// region yields nothing. Library errors on malformed input are treated as
// "invalid", never propagated.
func IsValidPhone(s, region string) bool {
	if region == "" {
		region = "US"
	}
	if num, err := phonenumbers.Parse(s, region); err == nil && phonenumbers.IsValidNumber(num) {
		return true
	}
	if strings.HasPrefix(strings.TrimSpace(s), "+") {
		if num, err := phonenumbers.Parse(s, ""); err == nil && phonenumbers.IsValidNumber(num) {
			return true
		}
	}
	return false
}
