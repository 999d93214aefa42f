package mock

import (
	"context"

	"github.com/fwojciec/menurag"
)

var _ menurag.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of menurag.ArtifactStore.
type ArtifactStore struct {
	SaveFn func(ctx context.Context, a *menurag.Artifacts) error
	LoadFn func(ctx context.Context) (*menurag.Artifacts, error)
}

func (s *ArtifactStore) Save(ctx context.Context, a *menurag.Artifacts) error {
	return s.SaveFn(ctx, a)
}

func (s *ArtifactStore) Load(ctx context.Context) (*menurag.Artifacts, error) {
	return s.LoadFn(ctx)
}
