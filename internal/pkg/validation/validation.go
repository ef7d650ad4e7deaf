package validation

import (
	"regexp"
	"unicode"

	"goodswap-backend/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Fullname: letters, spaces, hyphens, apostrophes only.
var fullnameRe = regexp.MustCompile(`^[A-Za-z\s\-']+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword enforces:
// - at least 8 characters
// - contains at least one letter
// - contains at least one number
// - contains at least one special character
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

func IsValidFullname(fullname string) bool {
	return fullname != "" && fullnameRe.MatchString(fullname)
}

// IsValidCategory reports whether c is one of the listing categories.
func IsValidCategory(c string) bool {
	switch c {
	case domain.CategoryClothing, domain.CategoryBooks, domain.CategoryProvisions:
		return true
	}
	return false
}

// IsValidModality reports whether m is one of the listing modalities.
func IsValidModality(m string) bool {
	switch m {
	case domain.ModalitySale, domain.ModalityDonation, domain.ModalitySwap:
		return true
	}
	return false
}
