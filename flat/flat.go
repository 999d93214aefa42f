// Package flat implements an exact inner-product vector index.
//
// Every query is scored against every stored vector. With L2-normalized
// vectors the inner product equals cosine similarity.
package flat

import (
	"cmp"
	"encoding/binary"
	"math"
	"slices"

	"github.com/fwojciec/menurag"
)

// NoMatch is the position reported for result slots that no stored vector
// fills, when k exceeds the number of vectors.
const NoMatch = -1

// noMatchScore is the score reported alongside NoMatch.
const noMatchScore = -math.MaxFloat32

// headerSize is the encoded size of dim and count.
const headerSize = 8

// Index holds vectors row-major. It is immutable once built and safe for
// concurrent searches.
type Index struct {
	dim  int
	n    int
	data []float32
}

// Build creates an index over vectors. Row i of the index is vectors[i].
// All vectors must share one non-zero dimension. An empty input yields an
// empty index of dimension 0.
func Build(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return &Index{}, nil
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, menurag.Errorf(menurag.EINVALID, "vector 0 is empty")
	}
	data := make([]float32, 0, dim*len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, menurag.Errorf(menurag.EINVALID, "inconsistent vector dims: vector %d has %d, want %d", i, len(v), dim)
		}
		data = append(data, v...)
	}
	return &Index{dim: dim, n: len(vectors), data: data}, nil
}

// Len returns the number of stored vectors.
func (x *Index) Len() int {
	return x.n
}

// Dim returns the vector dimension, or 0 for an empty index.
func (x *Index) Dim() int {
	return x.dim
}

// Search returns the k stored vectors with the highest inner product
// against query, best first. Equal scores are ordered by ascending
// position. When k exceeds Len the remaining slots hold NoMatch.
func (x *Index) Search(query []float32, k int) (scores []float32, positions []int, err error) {
	if k <= 0 {
		return nil, nil, menurag.Errorf(menurag.EINVALID, "k must be positive, got %d", k)
	}
	if x.n > 0 && len(query) != x.dim {
		return nil, nil, menurag.Errorf(menurag.EINVALID, "query dim %d != index dim %d", len(query), x.dim)
	}

	type scored struct {
		pos   int
		score float32
	}
	all := make([]scored, x.n)
	for i := range all {
		all[i] = scored{pos: i, score: dot(query, x.row(i))}
	}
	slices.SortFunc(all, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.pos, b.pos)
	})

	scores = make([]float32, k)
	positions = make([]int, k)
	for i := 0; i < k; i++ {
		if i < len(all) {
			scores[i] = all[i].score
			positions[i] = all[i].pos
			continue
		}
		scores[i] = noMatchScore
		positions[i] = NoMatch
	}
	return scores, positions, nil
}

func (x *Index) row(i int) []float32 {
	return x.data[i*x.dim : (i+1)*x.dim]
}

// MarshalBinary encodes the index as dim(uint32) n(uint32) followed by
// n*dim little-endian float32 values.
func (x *Index) MarshalBinary() ([]byte, error) {
	out := make([]byte, headerSize+4*len(x.data))
	binary.LittleEndian.PutUint32(out[0:4], uint32(x.dim))
	binary.LittleEndian.PutUint32(out[4:8], uint32(x.n))
	for i, v := range x.data {
		binary.LittleEndian.PutUint32(out[headerSize+4*i:], math.Float32bits(v))
	}
	return out, nil
}

// UnmarshalBinary restores an index encoded by MarshalBinary.
// Returns EMALFORMED if data is truncated or has trailing bytes.
func (x *Index) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return menurag.Errorf(menurag.EMALFORMED, "index blob too short: %d bytes", len(data))
	}
	dim := int(binary.LittleEndian.Uint32(data[0:4]))
	n := int(binary.LittleEndian.Uint32(data[4:8]))
	if (dim == 0) != (n == 0) {
		return menurag.Errorf(menurag.EMALFORMED, "index header inconsistent: dim=%d n=%d", dim, n)
	}
	body := data[headerSize:]
	if !bodyFits(len(body), dim, n) {
		return menurag.Errorf(menurag.EMALFORMED, "index blob size %d does not match dim=%d n=%d", len(data), dim, n)
	}

	values := make([]float32, dim*n)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(body[4*i:]))
	}
	x.dim, x.n, x.data = dim, n, values
	return nil
}

// bodyFits reports whether size bytes hold exactly n vectors of dim
// float32 values. Never multiplies header values.
func bodyFits(size, dim, n int) bool {
	if size%4 != 0 {
		return false
	}
	if dim == 0 {
		return size == 0
	}
	values := uint64(size) / 4
	return values%uint64(dim) == 0 && values/uint64(dim) == uint64(n)
}

// Decode is a convenience wrapper around UnmarshalBinary.
func Decode(data []byte) (*Index, error) {
	x := &Index{}
	if err := x.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return x, nil
}

// Normalize returns v scaled to unit L2 length. A zero vector is returned
// unchanged. The input is not modified.
func Normalize(v []float32) []float32 {
	out := make([]float32, len(v))
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		copy(out, v)
		return out
	}
	norm := math.Sqrt(sum)
	for i, f := range v {
		out[i] = float32(float64(f) / norm)
	}
	return out
}

func dot(a, b []float32) float32 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return float32(s)
}
