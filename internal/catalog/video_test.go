package catalog_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"

	"videocatalog/internal/catalog"
)

func newTestVideo() *catalog.Video {
	return catalog.NewVideo("Title", "Description", 2001, true, false, 120, catalog.Rating12)
}

func TestNewVideoAssignsIdentityAndEmptyAssociations(t *testing.T) {
	before := time.Now().UTC()
	a := newTestVideo()
	b := newTestVideo()
	after := time.Now().UTC()

	if a.ID() == uuid.Nil {
		t.Fatal("expected non-nil id")
	}
	if a.ID() == b.ID() {
		t.Fatal("expected distinct ids for distinct videos")
	}
	if a.CreatedAt().Before(before) || a.CreatedAt().After(after) {
		t.Fatalf("created at %v outside [%v, %v]", a.CreatedAt(), before, after)
	}
	if len(a.Categories()) != 0 || len(a.Genres()) != 0 || len(a.CastMembers()) != 0 {
		t.Fatal("expected empty association lists")
	}
	if _, ok := a.Thumb(); ok {
		t.Fatal("expected thumb absent")
	}
	if a.Media() != nil || a.Trailer() != nil {
		t.Fatal("expected media slots absent")
	}
	if a.Title() != "Title" || a.Description() != "Description" || a.YearLaunched() != 2001 ||
		!a.Opened() || a.Published() || a.Duration() != 120 || a.Rating() != catalog.Rating12 {
		t.Fatalf("unexpected scalar fields: %+v", a.State())
	}
}

func TestNewVideoDoesNotValidate(t *testing.T) {
	v := catalog.NewVideo("", "", 0, false, false, 0, catalog.RatingL)
	if v == nil {
		t.Fatal("expected video even with invalid fields")
	}
	if err := v.Validate(); !errors.Is(err, catalog.ErrRequiredField) {
		t.Fatalf("expected required field error from explicit Validate, got %v", err)
	}
}

func TestUpdateRating(t *testing.T) {
	cases := []struct {
		name   string
		rating *catalog.Rating
		want   catalog.Rating
	}{
		{name: "nil preserves", rating: nil, want: catalog.Rating12},
		{name: "present replaces", rating: ptr(catalog.Rating18), want: catalog.Rating18},
		{name: "zero value replaces", rating: ptr(catalog.RatingER), want: catalog.RatingER},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newTestVideo()
			id, created := v.ID(), v.CreatedAt()
			v.Update("New", "New description", 1999, false, true, 90, tc.rating)

			if v.Rating() != tc.want {
				t.Fatalf("rating = %s, want %s", v.Rating(), tc.want)
			}
			if v.Title() != "New" || v.Description() != "New description" || v.YearLaunched() != 1999 ||
				v.Opened() || !v.Published() || v.Duration() != 90 {
				t.Fatalf("scalar fields not replaced: %+v", v.State())
			}
			if v.ID() != id || !v.CreatedAt().Equal(created) {
				t.Fatal("id or created at changed on update")
			}
		})
	}
}

func TestUpdateLeavesArtworkMediaAndAssociations(t *testing.T) {
	v := newTestVideo()
	cat := uuid.New()
	v.UpdateThumb("thumb.jpg")
	v.UpdateMedia("movie.mp4")
	v.AddCategory(cat)

	v.Update("", "", 0, false, false, 0, nil)

	if img, ok := v.Thumb(); !ok || img.Path() != "thumb.jpg" {
		t.Fatalf("thumb changed: %v %v", img, ok)
	}
	if v.Media() == nil || v.Media().FilePath() != "movie.mp4" {
		t.Fatal("media changed")
	}
	if got := v.Categories(); len(got) != 1 || got[0] != cat {
		t.Fatalf("categories changed: %v", got)
	}
}

func TestArtworkSlotsAreIndependent(t *testing.T) {
	v := newTestVideo()
	v.UpdateThumb("a.jpg")
	v.UpdateBanner("b.jpg")
	v.UpdateBanner("c.jpg")

	if img, ok := v.Thumb(); !ok || img.Path() != "a.jpg" {
		t.Fatalf("thumb = %v %v", img, ok)
	}
	if _, ok := v.ThumbHalf(); ok {
		t.Fatal("thumb half should be absent")
	}
	if img, ok := v.Banner(); !ok || !img.Equal(catalog.NewImage("c.jpg")) {
		t.Fatalf("banner = %v %v", img, ok)
	}
}

func TestEncodingTransitionsWithoutMedia(t *testing.T) {
	v := newTestVideo()
	before := v.State()

	if err := v.UpdateAsSentToEncode(); !errors.Is(err, catalog.ErrMediaNotPresent) {
		t.Fatalf("UpdateAsSentToEncode err = %v", err)
	}
	if err := v.UpdateAsEncoded("enc/path"); !errors.Is(err, catalog.ErrMediaNotPresent) {
		t.Fatalf("UpdateAsEncoded err = %v", err)
	}
	if v.Media() != nil {
		t.Fatal("media should remain absent")
	}
	after := v.State()
	if before.Title != after.Title || before.Rating != after.Rating || !before.CreatedAt.Equal(after.CreatedAt) {
		t.Fatal("video changed after failed transition")
	}
}

func TestEncodingLifecycle(t *testing.T) {
	v := newTestVideo()
	v.UpdateMedia("raw/movie.mp4")

	m := v.Media()
	if m.Status() != catalog.MediaStatusPending {
		t.Fatalf("status = %s, want pending", m.Status())
	}
	if _, ok := m.EncodedPath(); ok {
		t.Fatal("encoded path should be absent")
	}

	if err := v.UpdateAsSentToEncode(); err != nil {
		t.Fatalf("UpdateAsSentToEncode: %v", err)
	}
	if v.Media().Status() != catalog.MediaStatusProcessing {
		t.Fatalf("status = %s, want processing", v.Media().Status())
	}

	if err := v.UpdateAsEncoded("enc/path"); err != nil {
		t.Fatalf("UpdateAsEncoded: %v", err)
	}
	if v.Media().Status() != catalog.MediaStatusCompleted {
		t.Fatalf("status = %s, want completed", v.Media().Status())
	}
	if path, ok := v.Media().EncodedPath(); !ok || path != "enc/path" {
		t.Fatalf("encoded path = %q %v", path, ok)
	}
}

func TestEncodingTransitionsAreUnguarded(t *testing.T) {
	v := newTestVideo()
	v.UpdateMedia("raw.mp4")

	if err := v.UpdateAsEncoded("first"); err != nil {
		t.Fatalf("encode from pending: %v", err)
	}
	if err := v.UpdateAsSentToEncode(); err != nil {
		t.Fatalf("resend completed media: %v", err)
	}
	if v.Media().Status() != catalog.MediaStatusProcessing {
		t.Fatalf("status = %s, want processing", v.Media().Status())
	}
	if err := v.UpdateAsEncoded("second"); err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if path, _ := v.Media().EncodedPath(); path != "second" {
		t.Fatalf("encoded path = %q, want overwrite", path)
	}
}

func TestUpdateMediaReplacesWholesale(t *testing.T) {
	v := newTestVideo()
	v.UpdateMedia("first.mp4")
	firstID := v.Media().ID()
	if err := v.UpdateAsEncoded("enc"); err != nil {
		t.Fatal(err)
	}

	v.UpdateMedia("second.mp4")
	m := v.Media()
	if m.ID() == firstID {
		t.Fatal("expected new media identity")
	}
	if m.Status() != catalog.MediaStatusPending || m.FilePath() != "second.mp4" {
		t.Fatalf("unexpected replaced media: %s %s", m.Status(), m.FilePath())
	}
	if _, ok := m.EncodedPath(); ok {
		t.Fatal("encoding progress should be discarded")
	}
}

func TestTrailerIsNotTheEncodingTarget(t *testing.T) {
	v := newTestVideo()
	v.UpdateTrailer("trailer.mp4")

	if err := v.UpdateAsSentToEncode(); !errors.Is(err, catalog.ErrMediaNotPresent) {
		t.Fatalf("expected media not present with only a trailer, got %v", err)
	}
	if v.Trailer().Status() != catalog.MediaStatusPending {
		t.Fatalf("trailer status = %s", v.Trailer().Status())
	}
}

func TestAssociationsKeepDuplicates(t *testing.T) {
	x, y := uuid.New(), uuid.New()
	v := newTestVideo()
	v.AddCategory(x)
	v.AddCategory(y)
	v.AddCategory(x)

	v.RemoveCategory(x)
	if got, want := v.Categories(), []uuid.UUID{y, x}; !slices.Equal(got, want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}

	v.RemoveCategory(uuid.New())
	if got := v.Categories(); len(got) != 2 {
		t.Fatalf("removing an absent id changed the list: %v", got)
	}
}

func TestAddTwiceRemoveOnceLeavesOne(t *testing.T) {
	x := uuid.New()
	v := newTestVideo()
	v.AddCategory(x)
	v.AddCategory(x)
	v.RemoveCategory(x)

	if got := v.Categories(); len(got) != 1 || got[0] != x {
		t.Fatalf("categories = %v, want exactly one %s", got, x)
	}
}

func TestRemoveAllGenres(t *testing.T) {
	v := newTestVideo()
	for range 3 {
		v.AddGenre(uuid.New())
	}
	v.RemoveAllGenres()
	if len(v.Genres()) != 0 {
		t.Fatalf("genres = %v", v.Genres())
	}
	v.RemoveAllGenres()
	if len(v.Genres()) != 0 {
		t.Fatal("second RemoveAllGenres should be a no-op")
	}
}

func TestCastMembers(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	v := newTestVideo()
	v.AddCastMember(a)
	v.AddCastMember(b)
	v.RemoveCastMember(a)
	if got := v.CastMembers(); !slices.Equal(got, []uuid.UUID{b}) {
		t.Fatalf("cast = %v", got)
	}
	v.RemoveAllCastMembers()
	if len(v.CastMembers()) != 0 {
		t.Fatal("expected empty cast")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	v := newTestVideo()
	id := uuid.New()
	v.AddGenre(id)

	got := v.Genres()
	got[0] = uuid.Nil
	if v.Genres()[0] != id {
		t.Fatal("mutating the returned slice changed the aggregate")
	}
}

func TestRestoreVideoRoundTrip(t *testing.T) {
	v := newTestVideo()
	v.UpdateThumbHalf("half.jpg")
	v.UpdateMedia("raw.mp4")
	if err := v.UpdateAsEncoded("enc.mp4"); err != nil {
		t.Fatal(err)
	}
	v.UpdateTrailer("trailer.mp4")
	cat := uuid.New()
	v.AddCategory(cat)
	v.AddCategory(cat)

	restored := catalog.RestoreVideo(v.State())

	if restored.ID() != v.ID() || !restored.CreatedAt().Equal(v.CreatedAt()) {
		t.Fatal("identity not preserved")
	}
	if _, ok := restored.Thumb(); ok {
		t.Fatal("thumb should be absent")
	}
	if img, ok := restored.ThumbHalf(); !ok || img.Path() != "half.jpg" {
		t.Fatalf("thumb half = %v %v", img, ok)
	}
	if restored.Media().ID() != v.Media().ID() || restored.Media().Status() != catalog.MediaStatusCompleted {
		t.Fatal("media not restored")
	}
	if path, ok := restored.Media().EncodedPath(); !ok || path != "enc.mp4" {
		t.Fatalf("encoded path = %q %v", path, ok)
	}
	if _, ok := restored.Trailer().EncodedPath(); ok {
		t.Fatal("trailer encoded path should be absent")
	}
	if got := restored.Categories(); !slices.Equal(got, []uuid.UUID{cat, cat}) {
		t.Fatalf("categories = %v", got)
	}
}

func ptr[T any](v T) *T { return &v }
