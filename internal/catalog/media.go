package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MediaStatus represents the encoding lifecycle of a media asset. The
// numeric values are persisted and must not be reordered.
type MediaStatus int

const (
	MediaStatusPending MediaStatus = iota
	MediaStatusProcessing
	MediaStatusCompleted
	// MediaStatusError is reserved for an external encoder reporting failure.
	// Nothing in this package transitions into it.
	MediaStatusError
)

var mediaStatusNames = [...]string{
	MediaStatusPending:    "pending",
	MediaStatusProcessing: "processing",
	MediaStatusCompleted:  "completed",
	MediaStatusError:      "error",
}

// Valid reports whether s is a defined status.
func (s MediaStatus) Valid() bool {
	return s >= MediaStatusPending && s <= MediaStatusError
}

func (s MediaStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("MediaStatus(%d)", int(s))
	}
	return mediaStatusNames[s]
}

// ParseMediaStatus converts a status name into a MediaStatus.
func ParseMediaStatus(value string) (MediaStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for i, name := range mediaStatusNames {
		if name == normalized {
			return MediaStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown media status %q", value)
}

// MediaStatusFromCode converts a persisted integer code back into a status.
func MediaStatusFromCode(code int64) (MediaStatus, error) {
	s := MediaStatus(code)
	if !s.Valid() {
		return 0, fmt.Errorf("unknown media status code %d", code)
	}
	return s, nil
}

// Media tracks one physical asset through encoding. Instances only exist
// inside a Video slot and are replaced wholesale, never merged.
type Media struct {
	id          uuid.UUID
	filePath    string
	encodedPath string
	encoded     bool
	status      MediaStatus
}

func newMedia(filePath string) *Media {
	return &Media{
		id:       uuid.New(),
		filePath: filePath,
		status:   MediaStatusPending,
	}
}

// ID returns the media identifier.
func (m *Media) ID() uuid.UUID { return m.id }

// FilePath returns the source asset location.
func (m *Media) FilePath() string { return m.filePath }

// EncodedPath returns the encoded output location and whether one has been
// recorded.
func (m *Media) EncodedPath() (string, bool) { return m.encodedPath, m.encoded }

// Status returns the current encoding status.
func (m *Media) Status() MediaStatus { return m.status }

// sendToEncode moves the media to Processing from any state.
func (m *Media) sendToEncode() {
	m.status = MediaStatusProcessing
}

// markEncoded moves the media to Completed from any state and overwrites the
// encoded path.
func (m *Media) markEncoded(encodedPath string) {
	m.status = MediaStatusCompleted
	m.encodedPath = encodedPath
	m.encoded = true
}

// MediaState is the persisted form of a Media.
type MediaState struct {
	ID          uuid.UUID
	FilePath    string
	EncodedPath *string
	Status      MediaStatus
}

func (m *Media) state() *MediaState {
	if m == nil {
		return nil
	}
	st := &MediaState{ID: m.id, FilePath: m.filePath, Status: m.status}
	if m.encoded {
		path := m.encodedPath
		st.EncodedPath = &path
	}
	return st
}

func restoreMedia(st *MediaState) *Media {
	if st == nil {
		return nil
	}
	m := &Media{id: st.ID, filePath: st.FilePath, status: st.Status}
	if st.EncodedPath != nil {
		m.encodedPath = *st.EncodedPath
		m.encoded = true
	}
	return m
}
