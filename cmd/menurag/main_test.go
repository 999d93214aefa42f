package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/menurag"
	main "github.com/fwojciec/menurag/cmd/menurag"
	"github.com/fwojciec/menurag/fs"
	"github.com/fwojciec/menurag/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDeps returns dependencies rooted in a fresh data directory with a
// file-based store and a keyword embedder.
func newDeps(t *testing.T) (*main.Dependencies, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	stdout := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:      context.Background(),
		Stdin:    strings.NewReader(""),
		Stdout:   stdout,
		Stderr:   &bytes.Buffer{},
		Logger:   slog.New(slog.DiscardHandler),
		Files:    main.NewFiles(dir),
		Embedder: keywordEmbedder(),
		Store:    fs.NewArtifactStore(filepath.Join(dir, "index")),
	}, stdout
}

// keywordEmbedder embeds texts by which dish keywords they mention.
func keywordEmbedder() *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				text = strings.ToLower(text)
				v := []float32{0, 0, 0.1}
				if strings.Contains(text, "paneer") {
					v[0] = 1
				}
				if strings.Contains(text, "chicken") || strings.Contains(text, "spicy") {
					v[1] = 1
				}
				out[i] = v
			}
			return out, nil
		},
	}
}

func str(s string) *string { return &s }

// writeRaw stores a scraped data file with one usable restaurant and one
// without menu items.
func writeRaw(t *testing.T, deps *main.Dependencies) {
	t.Helper()
	raws := []menurag.RawRestaurant{
		{
			Name:     "Spice King",
			Location: "Indiranagar",
			MenuItems: []menurag.RawMenuItem{
				{Name: str("Paneer Tikka"), Price: menurag.NewNumber(249), IsVeg: menurag.NewNumber(1), SmallDescription: str("Smoky grilled paneer")},
				{Name: str("Chicken Curry"), Price: menurag.NewNumber(320), IsVeg: menurag.NewNumber(0), SmallDescription: str("Fiery hot curry"), Rating: menurag.NewNumber(4.8), RatingCount: menurag.NewNumber(120)},
			},
		},
		{Name: "Closed Kitchen", MenuItems: []menurag.RawMenuItem{}},
	}
	require.NoError(t, fs.WriteJSON(deps.Files.Raw(), raws))
}

// buildIndex runs normalize and index on the scraped data.
func buildIndex(t *testing.T, deps *main.Dependencies) {
	t.Helper()
	writeRaw(t, deps)
	require.NoError(t, (&main.NormalizeCmd{}).Run(deps))
	require.NoError(t, (&main.IndexCmd{BatchSize: 10}).Run(deps))
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires a command", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), nil, strings.NewReader(""), stdout, io.Discard)

		require.Error(t, err)
		assert.Equal(t, menurag.EINVALID, menurag.ErrorCode(err))
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("prints help", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--help"}, strings.NewReader(""), stdout, io.Discard)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "normalize")
		assert.Contains(t, stdout.String(), "chat")
	})

	t.Run("rejects unknown store", func(t *testing.T) {
		t.Parallel()

		err := main.NewMain().Run(context.Background(), []string{"--store", "s3", "normalize"}, strings.NewReader(""), io.Discard, io.Discard)

		require.Error(t, err)
	})

	t.Run("requires an API key for model commands", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		args := []string{"--dir", t.TempDir(), "--provider", "openai", "--openai-api-key=", "ask", "anything spicy?"}
		err := main.NewMain().Run(context.Background(), args, strings.NewReader(""), io.Discard, stderr)

		require.Error(t, err)
		assert.Equal(t, menurag.EINVALID, menurag.ErrorCode(err))
		assert.Contains(t, stderr.String(), "OPENAI_API_KEY")
	})

	t.Run("runs offline commands end to end", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeRaw(t, &main.Dependencies{Files: main.NewFiles(dir)})

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--dir", dir, "normalize"}, strings.NewReader(""), stdout, io.Discard)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Normalized 1 restaurants (1 skipped)")
		_, err = os.Stat(filepath.Join(dir, "knowledge_base.json"))
		require.NoError(t, err)
	})
}
