package catalog

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// VideoState is a detached copy of a Video used by persistence layers. An
// absent artwork slot is a nil pointer; an absent media slot is nil.
type VideoState struct {
	ID           uuid.UUID
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	CreatedAt    time.Time
	Rating       Rating

	ThumbPath     *string
	ThumbHalfPath *string
	BannerPath    *string

	Media   *MediaState
	Trailer *MediaState

	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
}

// State snapshots the aggregate.
func (v *Video) State() VideoState {
	return VideoState{
		ID:            v.id,
		Title:         v.title,
		Description:   v.description,
		YearLaunched:  v.yearLaunched,
		Opened:        v.opened,
		Published:     v.published,
		Duration:      v.duration,
		CreatedAt:     v.createdAt,
		Rating:        v.rating,
		ThumbPath:     imagePath(v.thumb),
		ThumbHalfPath: imagePath(v.thumbHalf),
		BannerPath:    imagePath(v.banner),
		Media:         v.media.state(),
		Trailer:       v.trailer.state(),
		Categories:    slices.Clone(v.categories),
		Genres:        slices.Clone(v.genres),
		CastMembers:   slices.Clone(v.castMembers),
	}
}

// RestoreVideo rebuilds a Video from previously persisted state, keeping its
// identifier and creation time.
func RestoreVideo(st VideoState) *Video {
	return &Video{
		id:           st.ID,
		title:        st.Title,
		description:  st.Description,
		yearLaunched: st.YearLaunched,
		opened:       st.Opened,
		published:    st.Published,
		duration:     st.Duration,
		createdAt:    st.CreatedAt,
		rating:       st.Rating,
		thumb:        imageFromPath(st.ThumbPath),
		thumbHalf:    imageFromPath(st.ThumbHalfPath),
		banner:       imageFromPath(st.BannerPath),
		media:        restoreMedia(st.Media),
		trailer:      restoreMedia(st.Trailer),
		categories:   nonNil(st.Categories),
		genres:       nonNil(st.Genres),
		castMembers:  nonNil(st.CastMembers),
	}
}

func imagePath(img *Image) *string {
	if img == nil {
		return nil
	}
	path := img.path
	return &path
}

func imageFromPath(path *string) *Image {
	if path == nil {
		return nil
	}
	return imageRef(*path)
}

func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return slices.Clone(ids)
}
