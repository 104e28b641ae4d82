package catalog

import (
	"fmt"
	"strings"
)

// Rating is the content advisory classification of a video. The numeric
// values are persisted and must not be reordered.
type Rating int

const (
	RatingER Rating = iota
	RatingL
	Rating10
	Rating12
	Rating14
	Rating16
	Rating18
)

var ratingNames = [...]string{
	RatingER: "ER",
	RatingL:  "L",
	Rating10: "10",
	Rating12: "12",
	Rating14: "14",
	Rating16: "16",
	Rating18: "18",
}

// AllRatings returns the ratings in code order.
func AllRatings() []Rating {
	return []Rating{RatingER, RatingL, Rating10, Rating12, Rating14, Rating16, Rating18}
}

// Valid reports whether r is one of the defined ratings.
func (r Rating) Valid() bool {
	return r >= RatingER && r <= Rating18
}

func (r Rating) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rating(%d)", int(r))
	}
	return ratingNames[r]
}

// ParseRating accepts the symbolic codes ("ER", "L", "10" ... "18"), with an
// optional "Rate" prefix on the numeric ones.
func ParseRating(value string) (Rating, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.TrimPrefix(normalized, "RATE")
	for i, name := range ratingNames {
		if name == normalized {
			return Rating(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rating %q", value)
}

// RatingFromCode converts a persisted integer code back into a Rating.
func RatingFromCode(code int64) (Rating, error) {
	r := Rating(code)
	if !r.Valid() {
		return 0, fmt.Errorf("unknown rating code %d", code)
	}
	return r, nil
}
