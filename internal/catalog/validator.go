package catalog

import (
	"strings"
	"unicode/utf16"
)

const (
	TitleMaxLength       = 255
	DescriptionMaxLength = 4_000
)

// VideoValidator checks a Video's text fields. It reads the video and never
// mutates it.
type VideoValidator struct {
	video *Video
}

// NewVideoValidator binds a validator to video.
func NewVideoValidator(video *Video) VideoValidator {
	return VideoValidator{video: video}
}

// Validate returns the first rule violation. Title is checked before
// Description; lengths count UTF-16 code units,
// so a character outside the Basic Multilingual Plane counts as two.
func (v VideoValidator) Validate() error {
	if err := checkText("Title", v.video.title, TitleMaxLength); err != nil {
		return err
	}
	return checkText("Description", v.video.description, DescriptionMaxLength)
}

func checkText(field, value string, limit int) error {
	if strings.TrimSpace(value) == "" {
		return requiredField(field)
	}
	if utf16Len(value) > limit {
		return maxLengthExceeded(field, limit)
	}
	return nil
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
