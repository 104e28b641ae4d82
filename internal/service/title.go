package service

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const unknownTitle = "Untitled Video"

// DeriveTitle turns a media file name into a display title: the extension is
// dropped, separators collapse to single spaces and words are title-cased.
func DeriveTitle(sourcePath string) string {
	if sourcePath == "" {
		return unknownTitle
	}
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var cleaned strings.Builder
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return unknownTitle
	}
	return cases.Title(language.Und).String(title)
}
