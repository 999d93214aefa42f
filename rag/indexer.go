package rag

import (
	"context"
	"log/slog"

	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/flat"
	"github.com/google/uuid"
)

// DefaultBatchSize is the number of documents embedded per Embed call.
const DefaultBatchSize = 100

// BuildResult summarizes a completed index build.
type BuildResult struct {
	BuildID string
	// Documents are the embedded search texts, position-aligned with the
	// stored metadata.
	Documents []string
	Dim       int
}

// Indexer embeds the knowledge base and persists the resulting index.
type Indexer struct {
	embedder  menurag.Embedder
	store     menurag.ArtifactStore
	logger    *slog.Logger
	batchSize int
	newID     func() string
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithBatchSize sets how many documents are embedded per call.
func WithBatchSize(n int) IndexerOption {
	return func(ix *Indexer) {
		if n > 0 {
			ix.batchSize = n
		}
	}
}

// WithBuildIDFunc overrides how build IDs are generated.
func WithBuildIDFunc(fn func() string) IndexerOption {
	return func(ix *Indexer) {
		ix.newID = fn
	}
}

// NewIndexer creates an Indexer.
func NewIndexer(embedder menurag.Embedder, store menurag.ArtifactStore, logger *slog.Logger, opts ...IndexerOption) *Indexer {
	ix := &Indexer{
		embedder:  embedder,
		store:     store,
		logger:    loggerOrDiscard(logger),
		batchSize: DefaultBatchSize,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Build embeds every menu item in kb, indexes the normalized vectors and
// saves the index together with its metadata. Nothing is saved on error.
func (ix *Indexer) Build(ctx context.Context, kb []*menurag.Restaurant) (*BuildResult, error) {
	docs, metadata := menurag.BuildDocuments(kb)

	vectors, err := ix.embedAll(ctx, docs)
	if err != nil {
		return nil, err
	}

	idx, err := flat.Build(vectors)
	if err != nil {
		return nil, err
	}
	blob, err := idx.MarshalBinary()
	if err != nil {
		return nil, err
	}

	a := &menurag.Artifacts{
		BuildID:  ix.newID(),
		Index:    blob,
		Metadata: metadata,
	}
	if err := ix.store.Save(ctx, a); err != nil {
		return nil, err
	}

	ix.logger.Info("index built",
		"build", a.BuildID,
		"restaurants", len(kb),
		"items", idx.Len(),
		"dim", idx.Dim(),
	)

	return &BuildResult{BuildID: a.BuildID, Documents: docs, Dim: idx.Dim()}, nil
}

func (ix *Indexer) embedAll(ctx context.Context, docs []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(docs))
	for start := 0; start < len(docs); start += ix.batchSize {
		end := min(start+ix.batchSize, len(docs))
		batch, err := ix.embedder.Embed(ctx, docs[start:end])
		if err != nil {
			return nil, err
		}
		if len(batch) != end-start {
			return nil, menurag.Errorf(menurag.EINTERNAL, "embedder returned %d vectors for %d documents", len(batch), end-start)
		}
		for _, v := range batch {
			vectors = append(vectors, flat.Normalize(v))
		}
		ix.logger.Debug("embedded batch", "from", start, "to", end, "total", len(docs))
	}
	return vectors, nil
}
