// Package bumper produces the short spoken segments inserted between
// tracks: an announcer-written script, synthesized to audio, tagged and
// archived in storage.
package bumper

// Request carries everything the announcer and voice need to produce
// one segment.
type Request struct {
	StationID string   `json:"station_id"`
	Topics    []string `json:"topics"`
	Genres    []string `json:"genres"`
	VoiceID   string   `json:"voice_id"`
	VoiceName string   `json:"voice_name"`

	CurrentTrackName   string `json:"current_track_name,omitempty"`
	CurrentTrackArtist string `json:"current_track_artist,omitempty"`
	NextTrackName      string `json:"next_track_name,omitempty"`
	NextTrackArtist    string `json:"next_track_artist,omitempty"`

	// ListenerLocation is an opaque hint from the client, passed
	// through to the announcer untouched.
	ListenerLocation string `json:"listener_location,omitempty"`
}

// Clip is one produced segment ready to play.
type Clip struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	StorageKey string `json:"storage_key"`
	Audio      []byte `json:"-"` // MP3 bytes
}
