package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	titleMinLen = 2
	titleMaxLen = 31

	// Command prefix: titles must not be mistakable for bot commands.
	reservedTitlePrefix = "/"
)

var whitespaceRuns = regexp.MustCompile(`\s{2,}`)

// NormalizeTitle collapses internal whitespace runs and trims the ends.
// Validation always runs on the normalized form.
func NormalizeTitle(title string) string {
	return whitespaceRuns.ReplaceAllString(strings.TrimSpace(title), " ")
}

func validateTitle(title string) error {
	switch {
	case utf8.RuneCountInString(title) < titleMinLen:
		return ErrTitleTooShort
	case utf8.RuneCountInString(title) > titleMaxLen:
		return ErrTitleTooLong
	case strings.HasPrefix(title, reservedTitlePrefix):
		return ErrTitleReserved
	}
	return nil
}
