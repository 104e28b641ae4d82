package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"videocatalog/internal/catalog"
)

// videoRow mirrors the videos table. Each artwork slot and each media slot
// owns its own column group so that slots never share storage.
type videoRow struct {
	ID           string `db:"id"`
	Title        string `db:"title"`
	Description  string `db:"description"`
	YearLaunched int64  `db:"year_launched"`
	Opened       int64  `db:"opened"`
	Published    int64  `db:"published"`
	Duration     int64  `db:"duration"`
	CreatedAt    string `db:"created_at"`
	Rating       int64  `db:"rating"`

	ThumbPath     sql.NullString `db:"thumb_path"`
	ThumbHalfPath sql.NullString `db:"thumb_half_path"`
	BannerPath    sql.NullString `db:"banner_path"`

	MediaID          uuid.NullUUID  `db:"media_id"`
	MediaFilePath    sql.NullString `db:"media_file_path"`
	MediaEncodedPath sql.NullString `db:"media_encoded_path"`
	MediaStatus      sql.NullInt64  `db:"media_status"`

	TrailerID          uuid.NullUUID  `db:"trailer_id"`
	TrailerFilePath    sql.NullString `db:"trailer_file_path"`
	TrailerEncodedPath sql.NullString `db:"trailer_encoded_path"`
	TrailerStatus      sql.NullInt64  `db:"trailer_status"`
}

const videoColumns = `id, title, description, year_launched, opened, published, duration, created_at, rating,
	thumb_path, thumb_half_path, banner_path,
	media_id, media_file_path, media_encoded_path, media_status,
	trailer_id, trailer_file_path, trailer_encoded_path, trailer_status`

const upsertVideoSQL = `INSERT INTO videos (` + videoColumns + `)
VALUES (:id, :title, :description, :year_launched, :opened, :published, :duration, :created_at, :rating,
	:thumb_path, :thumb_half_path, :banner_path,
	:media_id, :media_file_path, :media_encoded_path, :media_status,
	:trailer_id, :trailer_file_path, :trailer_encoded_path, :trailer_status)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	description = excluded.description,
	year_launched = excluded.year_launched,
	opened = excluded.opened,
	published = excluded.published,
	duration = excluded.duration,
	rating = excluded.rating,
	thumb_path = excluded.thumb_path,
	thumb_half_path = excluded.thumb_half_path,
	banner_path = excluded.banner_path,
	media_id = excluded.media_id,
	media_file_path = excluded.media_file_path,
	media_encoded_path = excluded.media_encoded_path,
	media_status = excluded.media_status,
	trailer_id = excluded.trailer_id,
	trailer_file_path = excluded.trailer_file_path,
	trailer_encoded_path = excluded.trailer_encoded_path,
	trailer_status = excluded.trailer_status`

// association describes one ordered reference table.
type association struct {
	table  string
	column string
	ids    func(*catalog.VideoState) *[]uuid.UUID
}

var associations = []association{
	{table: "video_categories", column: "category_id", ids: func(st *catalog.VideoState) *[]uuid.UUID { return &st.Categories }},
	{table: "video_genres", column: "genre_id", ids: func(st *catalog.VideoState) *[]uuid.UUID { return &st.Genres }},
	{table: "video_cast_members", column: "cast_member_id", ids: func(st *catalog.VideoState) *[]uuid.UUID { return &st.CastMembers }},
}

// Save inserts or replaces the video together with its artwork, media and
// associations. The creation time of an existing row is kept.
func (u *Unit) Save(ctx context.Context, video *catalog.Video) error {
	if video == nil {
		return errors.New("save: video is nil")
	}
	st := video.State()
	row := rowFromState(st)

	if _, err := u.tx.NamedExecContext(ctx, upsertVideoSQL, row); err != nil {
		return fmt.Errorf("save video %s: %w", row.ID, err)
	}
	if err := u.deleteAssociations(ctx, row.ID); err != nil {
		return err
	}
	for _, assoc := range associations {
		query := u.tx.Rebind(fmt.Sprintf("INSERT INTO %s (video_id, position, %s) VALUES (?, ?, ?)", assoc.table, assoc.column))
		for position, id := range *assoc.ids(&st) {
			if _, err := u.tx.ExecContext(ctx, query, row.ID, position, id.String()); err != nil {
				return fmt.Errorf("save %s for video %s: %w", assoc.table, row.ID, err)
			}
		}
	}
	return nil
}

// Load reads the video with the given id. It returns ErrNotFound when no
// such video exists.
func (u *Unit) Load(ctx context.Context, id uuid.UUID) (*catalog.Video, error) {
	var row videoRow
	query := u.tx.Rebind("SELECT " + videoColumns + " FROM videos WHERE id = ?")
	if err := u.tx.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load video %s: %w", id, err)
	}

	st, err := row.state()
	if err != nil {
		return nil, fmt.Errorf("decode video %s: %w", id, err)
	}
	for _, assoc := range associations {
		var ids []uuid.UUID
		query := u.tx.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE video_id = ? ORDER BY position", assoc.column, assoc.table))
		if err := u.tx.SelectContext(ctx, &ids, query, id.String()); err != nil {
			return nil, fmt.Errorf("load %s for video %s: %w", assoc.table, id, err)
		}
		*assoc.ids(&st) = ids
	}
	return catalog.RestoreVideo(st), nil
}

// Delete removes the video and its associations. It returns ErrNotFound when
// no such video exists.
func (u *Unit) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.deleteAssociations(ctx, id.String()); err != nil {
		return err
	}
	res, err := u.tx.ExecContext(ctx, u.tx.Rebind("DELETE FROM videos WHERE id = ?"), id.String())
	if err != nil {
		return fmt.Errorf("delete video %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete video %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Exists reports whether a video with the given id is stored.
func (u *Unit) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int
	if err := u.tx.GetContext(ctx, &count, u.tx.Rebind("SELECT COUNT(1) FROM videos WHERE id = ?"), id.String()); err != nil {
		return false, fmt.Errorf("check video %s: %w", id, err)
	}
	return count > 0, nil
}

func (u *Unit) deleteAssociations(ctx context.Context, videoID string) error {
	for _, assoc := range associations {
		query := u.tx.Rebind(fmt.Sprintf("DELETE FROM %s WHERE video_id = ?", assoc.table))
		if _, err := u.tx.ExecContext(ctx, query, videoID); err != nil {
			return fmt.Errorf("clear %s for video %s: %w", assoc.table, videoID, err)
		}
	}
	return nil
}

func rowFromState(st catalog.VideoState) videoRow {
	row := videoRow{
		ID:            st.ID.String(),
		Title:         st.Title,
		Description:   st.Description,
		YearLaunched:  int64(st.YearLaunched),
		Opened:        boolToInt(st.Opened),
		Published:     boolToInt(st.Published),
		Duration:      int64(st.Duration),
		CreatedAt:     st.CreatedAt.UTC().Format(time.RFC3339Nano),
		Rating:        int64(st.Rating),
		ThumbPath:     nullableString(st.ThumbPath),
		ThumbHalfPath: nullableString(st.ThumbHalfPath),
		BannerPath:    nullableString(st.BannerPath),
	}
	if m := st.Media; m != nil {
		row.MediaID = uuid.NullUUID{UUID: m.ID, Valid: true}
		row.MediaFilePath = sql.NullString{String: m.FilePath, Valid: true}
		row.MediaEncodedPath = nullableString(m.EncodedPath)
		row.MediaStatus = sql.NullInt64{Int64: int64(m.Status), Valid: true}
	}
	if t := st.Trailer; t != nil {
		row.TrailerID = uuid.NullUUID{UUID: t.ID, Valid: true}
		row.TrailerFilePath = sql.NullString{String: t.FilePath, Valid: true}
		row.TrailerEncodedPath = nullableString(t.EncodedPath)
		row.TrailerStatus = sql.NullInt64{Int64: int64(t.Status), Valid: true}
	}
	return row
}

func (r videoRow) state() (catalog.VideoState, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return catalog.VideoState{}, fmt.Errorf("parse id: %w", err)
	}
	createdAt, err := parseTimeString(r.CreatedAt)
	if err != nil {
		return catalog.VideoState{}, fmt.Errorf("parse created_at %q: %w", r.CreatedAt, err)
	}
	rating, err := catalog.RatingFromCode(r.Rating)
	if err != nil {
		return catalog.VideoState{}, err
	}

	st := catalog.VideoState{
		ID:            id,
		Title:         r.Title,
		Description:   r.Description,
		YearLaunched:  int(r.YearLaunched),
		Opened:        r.Opened != 0,
		Published:     r.Published != 0,
		Duration:      int(r.Duration),
		CreatedAt:     createdAt,
		Rating:        rating,
		ThumbPath:     stringPtr(r.ThumbPath),
		ThumbHalfPath: stringPtr(r.ThumbHalfPath),
		BannerPath:    stringPtr(r.BannerPath),
	}
	if st.Media, err = mediaState(r.MediaID, r.MediaFilePath, r.MediaEncodedPath, r.MediaStatus); err != nil {
		return catalog.VideoState{}, fmt.Errorf("media: %w", err)
	}
	if st.Trailer, err = mediaState(r.TrailerID, r.TrailerFilePath, r.TrailerEncodedPath, r.TrailerStatus); err != nil {
		return catalog.VideoState{}, fmt.Errorf("trailer: %w", err)
	}
	return st, nil
}

func mediaState(id uuid.NullUUID, filePath, encodedPath sql.NullString, status sql.NullInt64) (*catalog.MediaState, error) {
	if !id.Valid {
		return nil, nil
	}
	code, err := catalog.MediaStatusFromCode(status.Int64)
	if err != nil {
		return nil, err
	}
	return &catalog.MediaState{
		ID:          id.UUID,
		FilePath:    filePath.String,
		EncodedPath: stringPtr(encodedPath),
		Status:      code,
	}, nil
}

// nullableString maps an absent value to NULL. An empty path that is present
// is stored as an empty string, not NULL.
func nullableString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
