package file

import (
	"path"
	"regexp"
	"strings"
)

// metadataObjectName is the well-known object holding the Metadata
// record inside each entity prefix.
const metadataObjectName = "metadata.json"

// entityKeys maps a file id to the object names backing it. All objects
// for one entity live under the "{id}/" prefix; this is the single
// place the key layout is defined.
type entityKeys struct {
	prefix   string
	payload  string
	metadata string
}

func keysFor(id, filename string) entityKeys {
	prefix := id + "/"
	return entityKeys{
		prefix:   prefix,
		payload:  prefix + filename,
		metadata: prefix + metadataObjectName,
	}
}

func metadataKey(id string) string {
	return keysFor(id, "").metadata
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded filename to a safe object-key
// component: path separators are stripped, spaces become underscores
// and anything outside [A-Za-z0-9_.-] is removed.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		return "upload"
	}
	return name
}
