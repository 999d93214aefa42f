package rag_test

import (
	"bytes"
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/menurag"
	"github.com/fwojciec/menurag/mock"
)

// restaurant builds a single-restaurant knowledge base entry whose items
// are named after names.
func restaurant(name string, items ...string) *menurag.Restaurant {
	r := &menurag.Restaurant{Name: name, Location: "Delhi", Contact: "+91 1", AvailableTime: "all day"}
	for _, item := range items {
		r.Menu = append(r.Menu, menurag.MenuItem{Name: item, Tags: []string{}})
	}
	return r
}

// keywordEmbedder maps each text to the vector of the first keyword, in
// sorted order, that it contains. Texts without a keyword embed to zero.
type keywordEmbedder struct {
	vectors map[string][]float32
	dim     int

	mu    sync.Mutex
	calls [][]string
}

func newKeywordEmbedder(dim int, vectors map[string][]float32) *keywordEmbedder {
	return &keywordEmbedder{vectors: vectors, dim: dim}
}

func (e *keywordEmbedder) mock() *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
			e.mu.Lock()
			e.calls = append(e.calls, append([]string(nil), texts...))
			e.mu.Unlock()

			out := make([][]float32, len(texts))
			for i, text := range texts {
				out[i] = make([]float32, e.dim)
				for _, keyword := range slices.Sorted(maps.Keys(e.vectors)) {
					if strings.Contains(text, keyword) {
						out[i] = e.vectors[keyword]
						break
					}
				}
			}
			return out, nil
		},
	}
}

func (e *keywordEmbedder) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

// memoryStore is an in-memory ArtifactStore.
func memoryStore() *mock.ArtifactStore {
	var mu sync.Mutex
	var saved *menurag.Artifacts
	return &mock.ArtifactStore{
		SaveFn: func(_ context.Context, a *menurag.Artifacts) error {
			mu.Lock()
			defer mu.Unlock()
			saved = a
			return nil
		},
		LoadFn: func(context.Context) (*menurag.Artifacts, error) {
			mu.Lock()
			defer mu.Unlock()
			if saved == nil {
				return nil, menurag.Errorf(menurag.ENOTFOUND, "no build")
			}
			return saved, nil
		},
	}
}

// testLogger returns a debug-level logger writing text to buf.
func testLogger(t *testing.T) (*slog.Logger, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
