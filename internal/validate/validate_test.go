package validate

import "testing"

func TestIsValidCreditCard(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"Visa", "4111111111111111", true},
		{"Visa with dashes", "4111-1111-1111-1111", true},
		{"Visa with spaces", "4111 1111 1111 1111", true},
		{"Mastercard", "5500000000000004", true},
		{"Amex", "378282246310005", true},
		{"Discover", "6011000000000004", true},
		{"bad checksum", "4111111111111112", false},
		{"sequential digits", "1234567890123456", false},
		{"all same digit", "0000000000000000", false},
		{"too short", "411111111111", false},
		{"too long", "41111111111111111111", false},
		{"letter inside", "4111a1111111111", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCreditCard(tt.in); got != tt.want {
				t.Errorf("IsValidCreditCard(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidSSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"typical", "123-45-6789", true},
		{"low area", "001-01-0001", true},
		{"area 000", "000-45-6789", false},
		{"area 666", "666-45-6789", false},
		{"area 900 range", "900-45-6789", false},
		{"area 999", "999-45-6789", false},
		{"group 00", "123-00-6789", false},
		{"serial 0000", "123-45-0000", false},
		{"wrong shape", "12-345-6789", false},
		{"no dashes", "123456789", false},
		{"letters", "abc-de-fghi", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidSSN(tt.in); got != tt.want {
				t.Errorf("IsValidSSN(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"simple", "john.doe@example.com", true},
		{"plus tag", "user+tag@company.org", true},
		{"subdomain", "a@mail.bigcorp.io", true},
		{"no tld", "a@localhost", false},
		{"single char tld", "a@x.c", false},
		{"leading dot local", ".user@example.com", false},
		{"trailing dot local", "user.@example.com", false},
		{"double dot local", "a..b@example.com", false},
		{"leading hyphen domain", "a@-example.com", false},
		{"trailing dot domain", "a@example.com.", false},
		{"no local", "@example.com", false},
		{"no at", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidEmail(tt.in); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		region string
		want   bool
	}{
		{"US with country code", "+1 650-253-0000", "US", true},
		{"US national format", "650-253-0000", "US", true},
		{"US parens", "(650) 253-0000", "US", true},
		{"UK international overrides region", "+44 20 7031 3000", "US", true},
		{"invalid area code", "555-123-4567", "US", false},
		{"all zeros", "000-000-0000", "US", false},
		{"too short", "12345", "US", false},
		{"empty region defaults to US", "650-253-0000", "", true},
		{"garbage", "not a number", "US", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPhone(tt.in, tt.region); got != tt.want {
				t.Errorf("IsValidPhone(%q, %q) = %v, want %v", tt.in, tt.region, got, tt.want)
			}
		})
	}
}
