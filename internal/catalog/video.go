package catalog

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Video is the catalog aggregate root.
type Video struct {
	id           uuid.UUID
	title        string
	description  string
	yearLaunched int
	opened       bool
	published    bool
	duration     int
	createdAt    time.Time
	rating       Rating

	thumb     *Image
	thumbHalf *Image
	banner    *Image

	media   *Media
	trailer *Media

	categories  []uuid.UUID
	genres      []uuid.UUID
	castMembers []uuid.UUID
}

// NewVideo creates a video with a fresh identifier and creation time. No
// validation runs; call Validate when a consistent record is required.
func NewVideo(title, description string, yearLaunched int, opened, published bool, duration int, rating Rating) *Video {
	return &Video{
		id:           uuid.New(),
		title:        title,
		description:  description,
		yearLaunched: yearLaunched,
		opened:       opened,
		published:    published,
		duration:     duration,
		rating:       rating,
		createdAt:    time.Now().UTC(),
		categories:   []uuid.UUID{},
		genres:       []uuid.UUID{},
		castMembers:  []uuid.UUID{},
	}
}

// ID returns the identifier assigned at construction.
func (v *Video) ID() uuid.UUID { return v.id }

// Title returns the display title.
func (v *Video) Title() string { return v.title }

// Description returns the synopsis text.
func (v *Video) Description() string { return v.description }

// YearLaunched returns the release year.
func (v *Video) YearLaunched() int { return v.yearLaunched }

// Opened reports whether the video is open to the public.
func (v *Video) Opened() bool { return v.opened }

// Published reports whether the video is published.
func (v *Video) Published() bool { return v.published }

// Duration returns the running time. The unit is not enforced.
func (v *Video) Duration() int { return v.duration }

// CreatedAt returns the UTC creation time.
func (v *Video) CreatedAt() time.Time { return v.createdAt }

// Rating returns the content rating.
func (v *Video) Rating() Rating { return v.rating }

// Thumb returns the thumbnail artwork, if set.
func (v *Video) Thumb() (Image, bool) { return imageSlot(v.thumb) }

// ThumbHalf returns the half-size thumbnail artwork, if set.
func (v *Video) ThumbHalf() (Image, bool) { return imageSlot(v.thumbHalf) }

// Banner returns the banner artwork, if set.
func (v *Video) Banner() (Image, bool) { return imageSlot(v.banner) }

// Media returns the primary media or nil. The returned value is read-only;
// transitions go through UpdateAsSentToEncode and UpdateAsEncoded.
func (v *Video) Media() *Media { return v.media }

// Trailer returns the trailer media or nil.
func (v *Video) Trailer() *Media { return v.trailer }

// Categories returns a copy of the category identifiers in insertion order.
func (v *Video) Categories() []uuid.UUID { return slices.Clone(v.categories) }

// Genres returns a copy of the genre identifiers in insertion order.
func (v *Video) Genres() []uuid.UUID { return slices.Clone(v.genres) }

// CastMembers returns a copy of the cast member identifiers in insertion order.
func (v *Video) CastMembers() []uuid.UUID { return slices.Clone(v.castMembers) }

// Update replaces every scalar field. A nil rating keeps the current one.
// Artwork, media, and associations are untouched.
func (v *Video) Update(title, description string, yearLaunched int, opened, published bool, duration int, rating *Rating) {
	v.title = title
	v.description = description
	v.yearLaunched = yearLaunched
	v.opened = opened
	v.published = published
	v.duration = duration
	if rating != nil {
		v.rating = *rating
	}
}

// UpdateThumb replaces the thumbnail artwork.
func (v *Video) UpdateThumb(path string) { v.thumb = imageRef(path) }

// UpdateThumbHalf replaces the half-size thumbnail artwork.
func (v *Video) UpdateThumbHalf(path string) { v.thumbHalf = imageRef(path) }

// UpdateBanner replaces the banner artwork.
func (v *Video) UpdateBanner(path string) { v.banner = imageRef(path) }

// UpdateMedia replaces the primary media with a new pending asset. Progress
// on the previous media is discarded.
func (v *Video) UpdateMedia(path string) { v.media = newMedia(path) }

// UpdateTrailer replaces the trailer with a new pending asset.
func (v *Video) UpdateTrailer(path string) { v.trailer = newMedia(path) }

// UpdateAsSentToEncode moves the primary media to Processing regardless of
// its current status.
func (v *Video) UpdateAsSentToEncode() error {
	if v.media == nil {
		return ErrMediaNotPresent
	}
	v.media.sendToEncode()
	return nil
}

// UpdateAsEncoded moves the primary media to Completed and records the
// encoded output path.
func (v *Video) UpdateAsEncoded(encodedPath string) error {
	if v.media == nil {
		return ErrMediaNotPresent
	}
	v.media.markEncoded(encodedPath)
	return nil
}

// AddCategory appends a category identifier. Duplicates are kept.
func (v *Video) AddCategory(id uuid.UUID) { v.categories = append(v.categories, id) }

// RemoveCategory drops the first occurrence of id, if any.
func (v *Video) RemoveCategory(id uuid.UUID) { v.categories = removeFirst(v.categories, id) }

// RemoveAllCategories clears the category list.
func (v *Video) RemoveAllCategories() { v.categories = []uuid.UUID{} }

// AddGenre appends a genre identifier. Duplicates are kept.
func (v *Video) AddGenre(id uuid.UUID) { v.genres = append(v.genres, id) }

// RemoveGenre drops the first occurrence of id, if any.
func (v *Video) RemoveGenre(id uuid.UUID) { v.genres = removeFirst(v.genres, id) }

// RemoveAllGenres clears the genre list.
func (v *Video) RemoveAllGenres() { v.genres = []uuid.UUID{} }

// AddCastMember appends a cast member identifier. Duplicates are kept.
func (v *Video) AddCastMember(id uuid.UUID) { v.castMembers = append(v.castMembers, id) }

// RemoveCastMember drops the first occurrence of id, if any.
func (v *Video) RemoveCastMember(id uuid.UUID) { v.castMembers = removeFirst(v.castMembers, id) }

// RemoveAllCastMembers clears the cast member list.
func (v *Video) RemoveAllCastMembers() { v.castMembers = []uuid.UUID{} }

// Validate checks the text fields and returns the first violation.
func (v *Video) Validate() error {
	return NewVideoValidator(v).Validate()
}

func imageRef(path string) *Image {
	img := NewImage(path)
	return &img
}

func imageSlot(img *Image) (Image, bool) {
	if img == nil {
		return Image{}, false
	}
	return *img, true
}

// removeFirst drops the first occurrence of id; duplicates after it remain.
func removeFirst(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	idx := slices.Index(ids, id)
	if idx < 0 {
		return ids
	}
	return slices.Delete(ids, idx, idx+1)
}
