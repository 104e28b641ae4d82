package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"videocatalog/internal/catalog"
	"videocatalog/internal/fileutil"
	"videocatalog/internal/logging"
	"videocatalog/internal/store"
)

// VideoInput carries the scalar attributes of a video.
type VideoInput struct {
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	// Rating is kept unchanged on update when nil. Create requires it.
	Rating *catalog.Rating
}

// ImportOptions controls ImportFile.
type ImportOptions struct {
	// Title overrides the title derived from the file name.
	Title        string
	Description  string
	YearLaunched int
	Rating       catalog.Rating
	// LibraryDir, when set, receives a verified copy of the file and the
	// copy becomes the media path.
	LibraryDir string
}

// VideoService coordinates catalog mutations with persistence.
type VideoService struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewVideoService builds a service around an open store.
func NewVideoService(st *store.Store, logger *slog.Logger) *VideoService {
	return &VideoService{
		store:  st,
		logger: logging.NewComponentLogger(logger, "service"),
		now:    time.Now,
	}
}

// Create builds a new video, validates it and stores it.
func (s *VideoService) Create(ctx context.Context, in VideoInput) (*catalog.Video, error) {
	if in.Rating == nil {
		return nil, errors.New("create video: rating is required")
	}
	video := catalog.NewVideo(in.Title, in.Description, in.YearLaunched, in.Opened, in.Published, in.Duration, *in.Rating)
	if err := video.Validate(); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	ctx = logging.WithOperation(logging.WithVideoID(ctx, video.ID().String()), "create")
	if err := s.store.Do(ctx, func(u *store.Unit) error {
		return u.Save(ctx, video)
	}); err != nil {
		return nil, s.fail(ctx, err)
	}
	s.log(ctx).Info("video created",
		logging.String("title", video.Title()),
		logging.String("rating", video.Rating().String()))
	return video, nil
}

// Get loads a video by id.
func (s *VideoService) Get(ctx context.Context, id uuid.UUID) (*catalog.Video, error) {
	var video *catalog.Video
	err := s.store.View(ctx, func(u *store.Unit) error {
		var err error
		video, err = u.Load(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

// Update replaces the scalar attributes of a video. A nil rating keeps the
// stored one. The result must pass validation.
func (s *VideoService) Update(ctx context.Context, id uuid.UUID, in VideoInput) (*catalog.Video, error) {
	return s.mutate(ctx, id, "update", func(v *catalog.Video) error {
		v.Update(in.Title, in.Description, in.YearLaunched, in.Opened, in.Published, in.Duration, in.Rating)
		return v.Validate()
	})
}

// SetThumb replaces the thumbnail image.
func (s *VideoService) SetThumb(ctx context.Context, id uuid.UUID, path string) (*catalog.Video, error) {
	return s.mutate(ctx, id, "set_thumb", func(v *catalog.Video) error {
		v.UpdateThumb(path)
		return nil
	})
}

// SetThumbHalf replaces the half-size thumbnail image.
func (s *VideoService) SetThumbHalf(ctx context.Context, id uuid.UUID, path string) (*catalog.Video, error) {
	return s.mutate(ctx, id, "set_thumb_half", func(v *catalog.Video) error {
		v.UpdateThumbHalf(path)
		return nil
	})
}

// SetBanner replaces the banner image.
func (s *VideoService) SetBanner(ctx context.Context, id uuid.UUID, path string) (*catalog.Video, error) {
	return s.mutate(ctx, id, "set_banner", func(v *catalog.Video) error {
		v.UpdateBanner(path)
		return nil
	})
}

// SetMedia attaches a new primary media file in the pending state.
func (s *VideoService) SetMedia(ctx context.Context, id uuid.UUID, path string) (*catalog.Video, error) {
	return s.mutate(ctx, id, "set_media", func(v *catalog.Video) error {
		v.UpdateMedia(path)
		return nil
	})
}

// SetTrailer attaches a new trailer file in the pending state.
func (s *VideoService) SetTrailer(ctx context.Context, id uuid.UUID, path string) (*catalog.Video, error) {
	return s.mutate(ctx, id, "set_trailer", func(v *catalog.Video) error {
		v.UpdateTrailer(path)
		return nil
	})
}

// MarkSentToEncode moves the primary media to processing.
func (s *VideoService) MarkSentToEncode(ctx context.Context, id uuid.UUID) (*catalog.Video, error) {
	ctx = logging.WithOperation(logging.WithVideoID(ctx, id.String()), "send_to_encode")
	video, err := s.mutate(ctx, id, "send_to_encode", (*catalog.Video).UpdateAsSentToEncode)
	if err != nil {
		return nil, err
	}
	s.log(ctx).Info("media sent to encode",
		logging.String(logging.FieldMediaStatus, video.Media().Status().String()))
	return video, nil
}

// MarkEncoded records the encoded output of the primary media.
func (s *VideoService) MarkEncoded(ctx context.Context, id uuid.UUID, encodedPath string) (*catalog.Video, error) {
	ctx = logging.WithOperation(logging.WithVideoID(ctx, id.String()), "mark_encoded")
	video, err := s.mutate(ctx, id, "mark_encoded", func(v *catalog.Video) error {
		return v.UpdateAsEncoded(encodedPath)
	})
	if err != nil {
		return nil, err
	}
	s.log(ctx).Info("media encoded",
		logging.String(logging.FieldMediaStatus, video.Media().Status().String()),
		logging.String("encoded_path", encodedPath))
	return video, nil
}

// AddAssociation appends ref to the named association. Duplicates are kept.
func (s *VideoService) AddAssociation(ctx context.Context, id uuid.UUID, kind Association, ref uuid.UUID) (*catalog.Video, error) {
	ops, err := opsFor(kind)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "add_"+string(kind), func(v *catalog.Video) error {
		ops.add(v, ref)
		return nil
	})
}

// RemoveAssociation removes the first occurrence of ref. A missing ref is
// not an error.
func (s *VideoService) RemoveAssociation(ctx context.Context, id uuid.UUID, kind Association, ref uuid.UUID) (*catalog.Video, error) {
	ops, err := opsFor(kind)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "remove_"+string(kind), func(v *catalog.Video) error {
		ops.remove(v, ref)
		return nil
	})
}

// ClearAssociation empties the named association.
func (s *VideoService) ClearAssociation(ctx context.Context, id uuid.UUID, kind Association) (*catalog.Video, error) {
	ops, err := opsFor(kind)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "clear_"+string(kind), func(v *catalog.Video) error {
		ops.removeAll(v)
		return nil
	})
}

// Validate checks a stored video and returns the first violated rule.
func (s *VideoService) Validate(ctx context.Context, id uuid.UUID) error {
	video, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return video.Validate()
}

// Delete removes a video.
func (s *VideoService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx = logging.WithOperation(logging.WithVideoID(ctx, id.String()), "delete")
	if err := s.store.Do(ctx, func(u *store.Unit) error {
		return u.Delete(ctx, id)
	}); err != nil {
		return s.fail(ctx, err)
	}
	s.log(ctx).Info("video deleted")
	return nil
}

// ImportFile creates a video for an existing media file and attaches the file,
// or its library copy, as the pending primary media.
func (s *VideoService) ImportFile(ctx context.Context, path string, opts ImportOptions) (*catalog.Video, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("import %s: is a directory", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}

	title := opts.Title
	if title == "" {
		title = DeriveTitle(abs)
	}
	description := opts.Description
	if description == "" {
		description = "Imported from " + filepath.Base(abs)
	}
	year := opts.YearLaunched
	if year == 0 {
		year = s.now().Year()
	}

	video := catalog.NewVideo(title, description, year, false, false, 0, opts.Rating)
	if err := video.Validate(); err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	ctx = logging.WithOperation(logging.WithVideoID(ctx, video.ID().String()), "import")

	mediaPath := abs
	if opts.LibraryDir != "" {
		mediaPath = fileutil.LibraryPath(opts.LibraryDir, video.ID(), abs)
		checksum, err := fileutil.CopyVerified(abs, mediaPath)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", path, err)
		}
		s.log(ctx).Debug("media copied into library",
			logging.String("media_path", mediaPath),
			logging.String("sha256", checksum))
	}
	video.UpdateMedia(mediaPath)

	if err := s.store.Do(ctx, func(u *store.Unit) error {
		return u.Save(ctx, video)
	}); err != nil {
		if mediaPath != abs {
			_ = os.Remove(mediaPath)
		}
		return nil, s.fail(ctx, err)
	}
	s.log(ctx).Info("video imported",
		logging.String("title", title),
		logging.String("media_path", mediaPath))
	return video, nil
}

// mutate loads a video, applies fn and saves the result in one unit of work.
// Nothing is saved when fn fails.
func (s *VideoService) mutate(ctx context.Context, id uuid.UUID, op string, fn func(*catalog.Video) error) (*catalog.Video, error) {
	ctx = logging.WithOperation(logging.WithVideoID(ctx, id.String()), op)
	var video *catalog.Video
	err := s.store.Do(ctx, func(u *store.Unit) error {
		loaded, err := u.Load(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(loaded); err != nil {
			return err
		}
		if err := u.Save(ctx, loaded); err != nil {
			return err
		}
		video = loaded
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.log(ctx).Debug("video updated")
	return video, nil
}

func (s *VideoService) log(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, s.logger)
}

func (s *VideoService) fail(ctx context.Context, err error) error {
	s.log(ctx).Warn("operation failed",
		logging.String(logging.FieldErrorKind, store.Kind(err)),
		logging.Error(err))
	return err
}
