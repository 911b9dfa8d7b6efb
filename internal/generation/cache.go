package generation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// Cached remembers answers per prompt in a bounded LRU.
// Failed generations and blank answers are never cached. Safe for concurrent use.
type Cached struct {
	next  Generator
	cache *lru.Cache
}

// NewCached wraps next with an LRU of at most size prompts.
func NewCached(next Generator, size int) (*Cached, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Generate returns the cached answer for prompt, or asks the wrapped generator.
func (c *Cached) Generate(ctx context.Context, prompt string) (string, error) {
	key := promptKey(prompt)
	if v, ok := c.cache.Get(key); ok {
		return v.(string), nil
	}

	answer, err := c.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if !IsBlank(answer) {
		c.cache.Add(key, answer)
	}
	return answer, nil
}

// Len returns the number of cached answers.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func promptKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
