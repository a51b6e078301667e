package services

import (
	"strings"
	"unicode"

	"github.com/ombreaffaire/authsvc/domain"
)

// passwordSymbols is the set of special characters the storefront accepts.
const passwordSymbols = "@$!%*?&"

// ValidatePassword enforces the account password policy: at least 8
// characters with one uppercase letter, one digit and one symbol. Checks
// run in order so the caller gets the first failing rule.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return domain.ErrPasswordTooShort
	}

	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		return domain.ErrPasswordNoUpper
	}
	if !hasDigit {
		return domain.ErrPasswordNoDigit
	}
	if !hasSymbol {
		return domain.ErrPasswordNoSymbol
	}
	return nil
}
