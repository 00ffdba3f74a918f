package file

import "time"

// Metadata is the authoritative record for one stored file. It is
// persisted as JSON in the metadata object under the file's prefix;
// the payload object holds only the raw bytes.
type Metadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Path        string    `json:"path"`
}
