package rag

import (
	"context"

	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/flat"
)

// Knowledge is a loaded index build. It is read-only and shared by all
// concurrent queries.
type Knowledge struct {
	BuildID  string
	Index    *flat.Index
	Metadata []menurag.Metadata
}

// NewKnowledge pairs an index with its metadata.
// Returns EMALFORMED if they do not describe the same number of items.
func NewKnowledge(buildID string, idx *flat.Index, metadata []menurag.Metadata) (*Knowledge, error) {
	if idx.Len() != len(metadata) {
		return nil, menurag.Errorf(menurag.EMALFORMED, "index has %d rows but metadata has %d entries", idx.Len(), len(metadata))
	}
	return &Knowledge{BuildID: buildID, Index: idx, Metadata: metadata}, nil
}

// Load reads the current build from store.
// Returns ENOTFOUND if no build exists and EMALFORMED if it is unusable.
func Load(ctx context.Context, store menurag.ArtifactStore) (*Knowledge, error) {
	a, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := flat.Decode(a.Index)
	if err != nil {
		return nil, err
	}
	return NewKnowledge(a.BuildID, idx, a.Metadata)
}
