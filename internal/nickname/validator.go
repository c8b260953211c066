// Package nickname decides whether a self-reported roster nickname can be
// trusted and derives the fallback used when it cannot.
//
// Organizational emails are built as the first LastNameLength runes of the
// family name followed by the first initial, e.g. "smitj@school.edu". A
// nickname validates when it contains the initial and the family-name prefix
// (in order, not necessarily contiguous), compared case-insensitively.
package nickname

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

const (
	// LastNameLength is the number of local-part runes taken from the family name.
	LastNameLength = 4
	// FirstInitialOffset is the local-part rune offset of the first initial.
	FirstInitialOffset = 4
	// DefaultFallbackLength is the local-part prefix length used as fallback.
	DefaultFallbackLength = 8
)

var folder = cases.Fold()

// Validate reports whether rawNickname plausibly belongs to the owner of email.
// Malformed or short emails never validate.
func Validate(rawNickname, email string) bool {
	local, ok := localPart(email)
	if !ok {
		return false
	}

	runes := []rune(folder.String(local))
	if len(runes) <= FirstInitialOffset {
		return false
	}

	initial := runes[FirstInitialOffset]
	if isSeparator(initial) {
		return false
	}
	token := lastNameToken(runes)
	if len(token) == 0 {
		return false
	}

	nick := []rune(folder.String(rawNickname))
	return containsRune(nick, initial) && isSubsequence(token, nick)
}

// Fallback returns the first length runes of the email local part, or ""
// when the email has no local part.
func Fallback(email string, length int) string {
	if length <= 0 {
		length = DefaultFallbackLength
	}
	local, ok := localPart(email)
	if !ok {
		return ""
	}
	runes := []rune(local)
	if len(runes) > length {
		runes = runes[:length]
	}
	return string(runes)
}

// Target returns rawNickname when it validates and the fallback otherwise.
// An empty result means the record cannot name anyone.
func Target(rawNickname, email string, fallbackLength int) string {
	if Validate(rawNickname, email) {
		return rawNickname
	}
	return Fallback(email, fallbackLength)
}

func localPart(email string) (string, bool) {
	email = strings.TrimSpace(email)
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return "", false
	}
	return email[:at], true
}

// lastNameToken is the leading run of the family-name runes, cut at the
// first separator.
func lastNameToken(local []rune) []rune {
	limit := min(LastNameLength, len(local))
	for i := 0; i < limit; i++ {
		if isSeparator(local[i]) {
			return local[:i]
		}
	}
	return local[:limit]
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r)
}

func containsRune(haystack []rune, r rune) bool {
	for _, h := range haystack {
		if h == r {
			return true
		}
	}
	return false
}

func isSubsequence(needle, haystack []rune) bool {
	i := 0
	for _, h := range haystack {
		if i == len(needle) {
			break
		}
		if h == needle[i] {
			i++
		}
	}
	return i == len(needle)
}
