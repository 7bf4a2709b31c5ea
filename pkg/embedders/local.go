package embedders

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const localDimension = 256

// LocalEmbedder is a deterministic feature-hashing embedder: each token is
// hashed into one of a fixed number of buckets and the resulting count vector
// is L2-normalized. It captures lexical overlap only, which is enough for the
// similarity cache to rank posts that share vocabulary with the query, and it
// needs no credential or network access. Same text in, same vector out.
type LocalEmbedder struct{}

func NewLocalEmbedder() *LocalEmbedder {
	return &LocalEmbedder{}
}

func (e *LocalEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, localDimension)

	for _, token := range tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[h.Sum32()%localDimension]++
	}

	// L2 normalize so cosine similarity behaves.
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}

	return vec, nil
}

func (e *LocalEmbedder) Dimension() int {
	return localDimension
}

func (e *LocalEmbedder) Name() string {
	return "local"
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

var _ Embedder = (*LocalEmbedder)(nil)
