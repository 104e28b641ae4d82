package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"videocatalog/internal/catalog"
)

const (
	ansiReset = "\x1b[0m"
	ansiBlue  = "\x1b[34m"
)

type mediaView struct {
	ID          string  `json:"id"`
	FilePath    string  `json:"file_path"`
	EncodedPath *string `json:"encoded_path,omitempty"`
	Status      string  `json:"status"`
}

type videoView struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	YearLaunched int        `json:"year_launched"`
	Opened       bool       `json:"opened"`
	Published    bool       `json:"published"`
	Duration     int        `json:"duration"`
	Rating       string     `json:"rating"`
	CreatedAt    time.Time  `json:"created_at"`
	Thumb        *string    `json:"thumb,omitempty"`
	ThumbHalf    *string    `json:"thumb_half,omitempty"`
	Banner       *string    `json:"banner,omitempty"`
	Media        *mediaView `json:"media,omitempty"`
	Trailer      *mediaView `json:"trailer,omitempty"`
	Categories   []string   `json:"categories"`
	Genres       []string   `json:"genres"`
	CastMembers  []string   `json:"cast_members"`
}

func newVideoView(v *catalog.Video) videoView {
	return videoView{
		ID:           v.ID().String(),
		Title:        v.Title(),
		Description:  v.Description(),
		YearLaunched: v.YearLaunched(),
		Opened:       v.Opened(),
		Published:    v.Published(),
		Duration:     v.Duration(),
		Rating:       v.Rating().String(),
		CreatedAt:    v.CreatedAt(),
		Thumb:        imageView(v.Thumb()),
		ThumbHalf:    imageView(v.ThumbHalf()),
		Banner:       imageView(v.Banner()),
		Media:        newMediaView(v.Media()),
		Trailer:      newMediaView(v.Trailer()),
		Categories:   idStrings(v.Categories()),
		Genres:       idStrings(v.Genres()),
		CastMembers:  idStrings(v.CastMembers()),
	}
}

func imageView(img catalog.Image, ok bool) *string {
	if !ok {
		return nil
	}
	path := img.Path()
	return &path
}

func newMediaView(m *catalog.Media) *mediaView {
	if m == nil {
		return nil
	}
	view := &mediaView{
		ID:       m.ID().String(),
		FilePath: m.FilePath(),
		Status:   m.Status().String(),
	}
	if path, ok := m.EncodedPath(); ok {
		view.EncodedPath = &path
	}
	return view
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// printVideo writes the video as JSON or as a field/value table.
func (c *commandContext) printVideo(cmd *cobra.Command, v *catalog.Video) error {
	view := newVideoView(v)
	if c.jsonOutput() {
		return writeJSON(cmd, view)
	}

	out := cmd.OutOrStdout()
	for _, line := range renderSectionHeader(view.Title, shouldColorize(out)) {
		fmt.Fprintln(out, line)
	}
	rows := [][]string{
		{"ID", view.ID},
		{"Description", view.Description},
		{"Year", strconv.Itoa(view.YearLaunched)},
		{"Duration", strconv.Itoa(view.Duration)},
		{"Rating", view.Rating},
		{"Opened", yesNo(view.Opened)},
		{"Published", yesNo(view.Published)},
		{"Created", view.CreatedAt.Format(time.RFC3339)},
		{"Thumb", optional(view.Thumb)},
		{"Thumb Half", optional(view.ThumbHalf)},
		{"Banner", optional(view.Banner)},
		{"Media", describeMedia(view.Media)},
		{"Trailer", describeMedia(view.Trailer)},
		{"Categories", joinOrDash(view.Categories)},
		{"Genres", joinOrDash(view.Genres)},
		{"Cast Members", joinOrDash(view.CastMembers)},
	}
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
	return nil
}

func describeMedia(m *mediaView) string {
	if m == nil {
		return "-"
	}
	desc := fmt.Sprintf("%s [%s]", m.FilePath, m.Status)
	if m.EncodedPath != nil {
		desc += " -> " + *m.EncodedPath
	}
	return desc
}

func optional(value *string) string {
	if value == nil {
		return "-"
	}
	return *value
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, "\n")
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
