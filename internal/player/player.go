// Package player defines the contract against the external streaming
// playback widget. The engine never assumes how the widget buffers,
// retries, or reconnects; it only consumes snapshots and pushes a small
// set of directives.
package player

// Track is the widget's view of one playable item.
type Track struct {
	URI        string `json:"uri"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	ArtURL     string `json:"art_url,omitempty"`
	DurationMS int    `json:"duration_ms,omitempty"`
}

// Snapshot is the widget's reported state at one instant: what is
// playing, where the playhead is, and a short history of what already
// played (most recent last). Both push notifications and the 1 Hz poll
// deliver this same shape.
type Snapshot struct {
	Paused     bool    `json:"paused"`
	PositionMS int     `json:"position_ms"`
	Current    Track   `json:"current"`
	Recent     []Track `json:"recent"`
}

// Controller is the widget's imperative surface.
type Controller interface {
	// Load hands the widget a read-only copy of the queue URIs and
	// starts playback from the top.
	Load(uris []string) error
	SetPaused(paused bool) error
	// SetVolume takes a fraction in [0, 1].
	SetVolume(fraction float64) error
	// Snapshot is the poll accessor for the live state.
	Snapshot() (Snapshot, error)
}
