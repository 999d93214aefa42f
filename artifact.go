package menurag

import "context"

// Artifacts is a persisted index build: the serialized vector index and
// the metadata describing each of its rows. Index row i and Metadata[i]
// describe the same menu item.
type Artifacts struct {
	BuildID  string
	Index    []byte
	Metadata []Metadata
}

// Validate returns an error if the artifacts are incomplete.
func (a *Artifacts) Validate() error {
	if a.BuildID == "" {
		return Errorf(EINVALID, "artifact build ID required")
	}
	if a.Index == nil {
		return Errorf(EINVALID, "artifact index required")
	}
	return nil
}

// ArtifactStore persists index builds.
type ArtifactStore interface {
	// Save stores a build and makes it current. Readers observe either the
	// previous build or the new one, never a mix of the two.
	Save(ctx context.Context, a *Artifacts) error

	// Load returns the current build.
	// Returns ENOTFOUND if nothing has been built yet and EMALFORMED if
	// the stored build is unreadable or fails its integrity checks.
	Load(ctx context.Context) (*Artifacts, error)
}
