package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"

	"videocatalog/internal/catalog"
	"videocatalog/internal/logging"
	"videocatalog/internal/service"
	"videocatalog/internal/store"
	"videocatalog/internal/testsupport"
)

func newService(t *testing.T) *service.VideoService {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	return service.NewVideoService(st, logging.NewNop())
}

func ptr[T any](v T) *T { return &v }

func mustCreate(t *testing.T, svc *service.VideoService, title string) *catalog.Video {
	t.Helper()
	video, err := svc.Create(context.Background(), service.VideoInput{
		Title:        title,
		Description:  "about " + title,
		YearLaunched: 1999,
		Duration:     100,
		Rating:       ptr(catalog.Rating16),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return video
}

func TestCreateAndGet(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, "The Matrix")
	got, err := svc.Get(ctx, created.ID())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title() != "The Matrix" || got.Rating() != catalog.Rating16 {
		t.Fatalf("unexpected video: %q %s", got.Title(), got.Rating())
	}
}

func TestCreateRejectsInvalidVideo(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), service.VideoInput{
		Title:       "",
		Description: "no title",
		Rating:      ptr(catalog.RatingL),
	})
	if !errors.Is(err, catalog.ErrRequiredField) {
		t.Fatalf("expected required field error, got %v", err)
	}
}

func TestCreateRequiresRating(t *testing.T) {
	svc := newService(t)
	if _, err := svc.Create(context.Background(), service.VideoInput{Title: "x", Description: "y"}); err == nil {
		t.Fatal("expected error without rating")
	}
}

func TestGetMissingVideo(t *testing.T) {
	svc := newService(t)
	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateKeepsRatingWhenNil(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	video := mustCreate(t, svc, "Old")

	updated, err := svc.Update(ctx, video.ID(), service.VideoInput{
		Title:        "New",
		Description:  "changed",
		YearLaunched: 2001,
		Opened:       true,
		Duration:     101,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title() != "New" || updated.Rating() != catalog.Rating16 {
		t.Fatalf("unexpected update: %q %s", updated.Title(), updated.Rating())
	}
}

func TestUpdateRejectedLeavesStoredVideo(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	video := mustCreate(t, svc, "Keep")

	_, err := svc.Update(ctx, video.ID(), service.VideoInput{Title: "Keep", Description: ""})
	if !errors.Is(err, catalog.ErrRequiredField) {
		t.Fatalf("expected required field error, got %v", err)
	}
	got, err := svc.Get(ctx, video.ID())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Description() != "about Keep" {
		t.Fatalf("description changed to %q", got.Description())
	}
}

func TestArtworkOperations(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	video := mustCreate(t, svc, "Art")

	if _, err := svc.SetThumb(ctx, video.ID(), "/t.jpg"); err != nil {
		t.Fatalf("SetThumb failed: %v", err)
	}
	if _, err := svc.SetBanner(ctx, video.ID(), "/b.jpg"); err != nil {
		t.Fatalf("SetBanner failed: %v", err)
	}
	got, err := svc.Get(ctx, video.ID())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if img, ok := got.Thumb(); !ok || img.Path() != "/t.jpg" {
		t.Fatalf("thumb = %q, %v", img.Path(), ok)
	}
	if _, ok := got.ThumbHalf(); ok {
		t.Fatal("thumb half should be absent")
	}
	if img, ok := got.Banner(); !ok || img.Path() != "/b.jpg" {
		t.Fatalf("banner = %q, %v", img.Path(), ok)
	}

	if _, err := svc.SetThumbHalf(ctx, video.ID(), "/th.jpg"); err != nil {
		t.Fatalf("SetThumbHalf failed: %v", err)
	}
	got, _ = svc.Get(ctx, video.ID())
	if img, ok := got.ThumbHalf(); !ok || img.Path() != "/th.jpg" {
		t.Fatalf("thumb half = %q, %v", img.Path(), ok)
	}
}

func TestEncodingWorkflow(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	video := mustCreate(t, svc, "Encode")

	if _, err := svc.MarkSentToEncode(ctx, video.ID()); !errors.Is(err, catalog.ErrMediaNotPresent) {
		t.Fatalf("expected ErrMediaNotPresent, got %v", err)
	}
	if _, err := svc.MarkEncoded(ctx, video.ID(), "/enc.mp4"); !errors.Is(err, catalog.ErrMediaNotPresent) {
		t.Fatalf("expected ErrMediaNotPresent, got %v", err)
	}

	if _, err := svc.SetTrailer(ctx, video.ID(), "/trailer.mkv"); err != nil {
		t.Fatalf("SetTrailer failed: %v", err)
	}
	if _, err := svc.MarkSentToEncode(ctx, video.ID()); !errors.Is(err, catalog.ErrMediaNotPresent) {
		t.Fatalf("trailer must not satisfy media requirement, got %v", err)
	}

	if _, err := svc.SetMedia(ctx, video.ID(), "/raw.mkv"); err != nil {
		t.Fatalf("SetMedia failed: %v", err)
	}
	sent, err := svc.MarkSentToEncode(ctx, video.ID())
	if err != nil {
		t.Fatalf("MarkSentToEncode failed: %v", err)
	}
	if sent.Media().Status() != catalog.MediaStatusProcessing {
		t.Fatalf("status = %s, want processing", sent.Media().Status())
	}

	encoded, err := svc.MarkEncoded(ctx, video.ID(), "/enc.mp4")
	if err != nil {
		t.Fatalf("MarkEncoded failed: %v", err)
	}
	if encoded.Media().Status() != catalog.MediaStatusCompleted {
		t.Fatalf("status = %s, want completed", encoded.Media().Status())
	}
	if path, ok := encoded.Media().EncodedPath(); !ok || path != "/enc.mp4" {
		t.Fatalf("encoded path = %q, %v", path, ok)
	}
	if encoded.Trailer().Status() != catalog.MediaStatusPending {
		t.Fatalf("trailer status = %s, want pending", encoded.Trailer().Status())
	}
}

func TestEncodingWorkflowLogsCarryVideoContext(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	logPath := filepath.Join(t.TempDir(), "service.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("logging.New failed: %v", err)
	}
	svc := service.NewVideoService(st, logger)
	ctx := context.Background()

	video := mustCreate(t, svc, "Logged")
	if _, err := svc.SetMedia(ctx, video.ID(), "/raw.mkv"); err != nil {
		t.Fatalf("SetMedia failed: %v", err)
	}
	if _, err := svc.MarkSentToEncode(ctx, video.ID()); err != nil {
		t.Fatalf("MarkSentToEncode failed: %v", err)
	}
	if _, err := svc.MarkEncoded(ctx, video.ID(), "/out.mp4"); err != nil {
		t.Fatalf("MarkEncoded failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	entries := map[string]map[string]any{}
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if msg, ok := entry["msg"].(string); ok {
			entries[msg] = entry
		}
	}

	cases := []struct {
		msg       string
		operation string
		status    string
	}{
		{msg: "media sent to encode", operation: "send_to_encode", status: catalog.MediaStatusProcessing.String()},
		{msg: "media encoded", operation: "mark_encoded", status: catalog.MediaStatusCompleted.String()},
	}
	for _, tc := range cases {
		entry, ok := entries[tc.msg]
		if !ok {
			t.Fatalf("missing %q log entry in %s", tc.msg, content)
		}
		if entry[logging.FieldVideoID] != video.ID().String() {
			t.Fatalf("%q: video_id = %v, want %s", tc.msg, entry[logging.FieldVideoID], video.ID())
		}
		if entry[logging.FieldOperation] != tc.operation {
			t.Fatalf("%q: operation = %v, want %s", tc.msg, entry[logging.FieldOperation], tc.operation)
		}
		if entry[logging.FieldMediaStatus] != tc.status {
			t.Fatalf("%q: media_status = %v, want %s", tc.msg, entry[logging.FieldMediaStatus], tc.status)
		}
	}
	if got := entries["media encoded"]["encoded_path"]; got != "/out.mp4" {
		t.Fatalf("encoded_path = %v", got)
	}
}

func TestAssociationOperations(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	video := mustCreate(t, svc, "Links")

	ref := uuid.New()
	other := uuid.New()
	kinds := []service.Association{
		service.AssociationCategory,
		service.AssociationGenre,
		service.AssociationCastMember,
	}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			for _, id := range []uuid.UUID{ref, other, ref} {
				if _, err := svc.AddAssociation(ctx, video.ID(), kind, id); err != nil {
					t.Fatalf("AddAssociation failed: %v", err)
				}
			}
			got, err := svc.RemoveAssociation(ctx, video.ID(), kind, ref)
			if err != nil {
				t.Fatalf("RemoveAssociation failed: %v", err)
			}
			ids, err := service.IDs(got, kind)
			if err != nil {
				t.Fatalf("IDs failed: %v", err)
			}
			if want := []uuid.UUID{other, ref}; !slices.Equal(ids, want) {
				t.Fatalf("ids = %v, want %v", ids, want)
			}

			cleared, err := svc.ClearAssociation(ctx, video.ID(), kind)
			if err != nil {
				t.Fatalf("ClearAssociation failed: %v", err)
			}
			if ids, _ := service.IDs(cleared, kind); len(ids) != 0 {
				t.Fatalf("expected empty association, got %v", ids)
			}
		})
	}
}

func TestAssociationsAreIndependent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	video := mustCreate(t, svc, "Separate")

	ref := uuid.New()
	if _, err := svc.AddAssociation(ctx, video.ID(), service.AssociationGenre, ref); err != nil {
		t.Fatalf("AddAssociation failed: %v", err)
	}
	got, err := svc.Get(ctx, video.ID())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Categories()) != 0 || len(got.CastMembers()) != 0 {
		t.Fatalf("genre leaked into other associations: %v %v", got.Categories(), got.CastMembers())
	}
}

func TestParseAssociation(t *testing.T) {
	cases := map[string]service.Association{
		"category":    service.AssociationCategory,
		"Genres":      service.AssociationGenre,
		"cast":        service.AssociationCastMember,
		"cast-member": service.AssociationCastMember,
	}
	for input, want := range cases {
		got, err := service.ParseAssociation(input)
		if err != nil || got != want {
			t.Fatalf("ParseAssociation(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := service.ParseAssociation("studio"); err == nil {
		t.Fatal("expected error for unknown association")
	}
}

func TestValidateStoredVideo(t *testing.T) {
	svc := newService(t)
	video := mustCreate(t, svc, "Valid")
	if err := svc.Validate(context.Background(), video.ID()); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	video := mustCreate(t, svc, "Bye")

	if err := svc.Delete(ctx, video.ID()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, video.ID()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, video.ID()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestImportFile(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "blade_runner-2049.mkv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}

	video, err := svc.ImportFile(ctx, path, service.ImportOptions{YearLaunched: 2017, Rating: catalog.Rating16})
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if video.Title() != "Blade Runner 2049" {
		t.Fatalf("title = %q", video.Title())
	}
	if video.Media() == nil || video.Media().FilePath() != path {
		t.Fatalf("unexpected media: %#v", video.Media())
	}
	if video.Media().Status() != catalog.MediaStatusPending {
		t.Fatalf("status = %s, want pending", video.Media().Status())
	}

	stored, err := svc.Get(ctx, video.ID())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.YearLaunched() != 2017 || stored.Description() == "" {
		t.Fatalf("unexpected stored video: %d %q", stored.YearLaunched(), stored.Description())
	}
}

func TestImportFileCopiesIntoLibrary(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "Metropolis.MKV")
	if err := os.WriteFile(src, []byte("frames"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}
	library := filepath.Join(t.TempDir(), "library")

	video, err := svc.ImportFile(ctx, src, service.ImportOptions{LibraryDir: library, Rating: catalog.RatingL})
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	mediaPath := video.Media().FilePath()
	if filepath.Dir(filepath.Dir(mediaPath)) != library || filepath.Ext(mediaPath) != ".mkv" {
		t.Fatalf("media not placed in library: %s", mediaPath)
	}
	data, err := os.ReadFile(mediaPath)
	if err != nil || string(data) != "frames" {
		t.Fatalf("library copy = %q, %v", data, err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source should be kept: %v", err)
	}
}

func TestImportFileRejectsMissingFile(t *testing.T) {
	svc := newService(t)
	_, err := svc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.mkv"), service.ImportOptions{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/media/the.big.lebowski.mkv", "The Big Lebowski"},
		{"alien__director-cut.mp4", "Alien Director Cut"},
		{"", "Untitled Video"},
		{"/media/---.mkv", "Untitled Video"},
	}
	for _, tc := range cases {
		if got := service.DeriveTitle(tc.in); got != tc.want {
			t.Fatalf("DeriveTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
