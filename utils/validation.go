// utils/validation.go
package utils

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateMobile checks if a mobile number is in a valid format
func ValidateMobile(mobile string) bool {
	// Clean the number
	cleaned := strings.ReplaceAll(mobile, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{6,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ContainsDevanagari reports whether the text carries any Devanagari rune.
// Used to decide which name channel (Marathi or English) a submitted name
// belongs to.
func ContainsDevanagari(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Devanagari, r) {
			return true
		}
	}
	return false
}
