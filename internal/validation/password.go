package validation

import "unicode"

// Password strength policy defaults: at least 8 characters with one lowercase
// letter, one uppercase letter, one digit and one symbol.
const (
	minPasswordLength = 8
)

// StrongPassword is the default password policy.
func StrongPassword(password string) bool {
	if len([]rune(password)) < minPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
