package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/menurag"
)

// File names inside a build directory.
const (
	IndexFile    = "index.bin"
	MetadataFile = "metadata.json"
	ManifestFile = "manifest.json"
)

const (
	buildsDir   = "builds"
	currentLink = "current"
)

// Ensure ArtifactStore implements menurag.ArtifactStore at compile time.
var _ menurag.ArtifactStore = (*ArtifactStore)(nil)

// Manifest describes a build directory and guards it against corruption.
type Manifest struct {
	BuildID          string    `json:"build_id"`
	Count            int       `json:"count"`
	IndexChecksum    string    `json:"index_xxhash"`
	MetadataChecksum string    `json:"metadata_xxhash"`
	CreatedAt        time.Time `json:"created_at"`
}

// ArtifactStore keeps each build in its own directory under dir/builds and
// marks the current one with the dir/current symlink. Save writes a
// complete build before swapping the link with a rename, so Load never
// observes a half-written pair.
type ArtifactStore struct {
	dir string
	now func() time.Time

	// Keep is the number of builds retained, including the current one.
	Keep int
}

// NewArtifactStore creates an ArtifactStore rooted at dir.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir, now: time.Now, Keep: 2}
}

// Save writes a as a new build and makes it current.
func (s *ArtifactStore) Save(ctx context.Context, a *menurag.Artifacts) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	metadata, err := json.Marshal(a.Metadata)
	if err != nil {
		return err
	}
	manifest, err := json.MarshalIndent(Manifest{
		BuildID:          a.BuildID,
		Count:            len(a.Metadata),
		IndexChecksum:    checksum(a.Index),
		MetadataChecksum: checksum(metadata),
		CreatedAt:        s.now().UTC(),
	}, "", "  ")
	if err != nil {
		return err
	}

	rel := filepath.Join(buildsDir, a.BuildID)
	final := filepath.Join(s.dir, rel)
	if _, err := os.Stat(final); err == nil {
		return menurag.Errorf(menurag.ECONFLICT, "build %q already exists", a.BuildID)
	}

	tmp := final + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return err
	}
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return err
	}
	for name, data := range map[string][]byte{
		IndexFile:    a.Index,
		MetadataFile: metadata,
		ManifestFile: manifest,
	} {
		if err := os.WriteFile(filepath.Join(tmp, name), data, 0644); err != nil {
			os.RemoveAll(tmp)
			return err
		}
	}
	if err := os.Rename(tmp, final); err != nil {
		os.RemoveAll(tmp)
		return err
	}

	if err := s.swapCurrent(rel); err != nil {
		return err
	}
	return s.prune(a.BuildID)
}

// swapCurrent atomically points the current link at target.
func (s *ArtifactStore) swapCurrent(target string) error {
	link := filepath.Join(s.dir, currentLink)
	tmp := link + ".tmp"
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.Symlink(target, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, link); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("swapping current build: %w", err)
	}
	return nil
}

// prune removes the oldest builds beyond Keep, never touching current.
func (s *ArtifactStore) prune(current string) error {
	if s.Keep <= 0 {
		return nil
	}
	root := filepath.Join(s.dir, buildsDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	type build struct {
		id      string
		modTime time.Time
	}
	var builds []build
	for _, e := range entries {
		if !e.IsDir() || e.Name() == current || filepath.Ext(e.Name()) == ".tmp" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		builds = append(builds, build{id: e.Name(), modTime: info.ModTime()})
	}
	sort.Slice(builds, func(i, j int) bool { return builds[i].modTime.After(builds[j].modTime) })

	for i := s.Keep - 1; i < len(builds); i++ {
		if err := os.RemoveAll(filepath.Join(root, builds[i].id)); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the current build.
func (s *ArtifactStore) Load(ctx context.Context) (*menurag.Artifacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := os.Readlink(filepath.Join(s.dir, currentLink))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, menurag.Errorf(menurag.ENOTFOUND, "no index build in %s", s.dir)
	} else if err != nil {
		return nil, err
	}
	dir := filepath.Join(s.dir, target)

	var manifest Manifest
	if err := ReadJSON(filepath.Join(dir, ManifestFile), &manifest); err != nil {
		return nil, malformed(err)
	}
	index, err := readBuildFile(dir, IndexFile)
	if err != nil {
		return nil, err
	}
	metadataJSON, err := readBuildFile(dir, MetadataFile)
	if err != nil {
		return nil, err
	}

	if checksum(index) != manifest.IndexChecksum {
		return nil, menurag.Errorf(menurag.EMALFORMED, "index checksum mismatch in build %q", manifest.BuildID)
	}
	if checksum(metadataJSON) != manifest.MetadataChecksum {
		return nil, menurag.Errorf(menurag.EMALFORMED, "metadata checksum mismatch in build %q", manifest.BuildID)
	}

	var metadata []menurag.Metadata
	if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
		return nil, menurag.Errorf(menurag.EMALFORMED, "decoding metadata: %v", err)
	}
	if len(metadata) != manifest.Count {
		return nil, menurag.Errorf(menurag.EMALFORMED, "manifest lists %d items but metadata has %d", manifest.Count, len(metadata))
	}

	return &menurag.Artifacts{
		BuildID:  manifest.BuildID,
		Index:    index,
		Metadata: metadata,
	}, nil
}

// readBuildFile reads a file of the current build. A file missing from a
// build that the current link points at means the build is damaged.
func readBuildFile(dir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, menurag.Errorf(menurag.EMALFORMED, "build is missing %s", name)
	} else if err != nil {
		return nil, err
	}
	return data, nil
}

func malformed(err error) error {
	if menurag.ErrorCode(err) == menurag.ENOTFOUND {
		return menurag.Errorf(menurag.EMALFORMED, "%s", menurag.ErrorMessage(err))
	}
	return err
}

func checksum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
