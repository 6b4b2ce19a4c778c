package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const encodingName = "cl100k_base"

// Truncator cuts section text down to the model's input budget. The BPE
// tables are loaded on first use; when they cannot be loaded a rough
// four-characters-per-token estimate is used instead.
type Truncator struct {
	maxTokens int

	once     sync.Once
	encoding *tiktoken.Tiktoken
}

func NewTruncator(maxTokens int) *Truncator {
	return &Truncator{maxTokens: maxTokens}
}

func (t *Truncator) load() {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(encodingName)
		if err != nil {
			zap.S().Named("llm").Warnf("failed to load tiktoken encoding, falling back to estimates: %v", err)
			return
		}
		t.encoding = enc
	})
}

// Truncate returns text unchanged when it fits, otherwise its prefix of at
// most maxTokens tokens. A non-positive budget disables truncation.
func (t *Truncator) Truncate(text string) string {
	if t == nil || t.maxTokens <= 0 || text == "" {
		return text
	}
	// every token spans at least one byte
	if len(text) <= t.maxTokens {
		return text
	}
	t.load()
	if t.encoding == nil {
		limit := t.maxTokens * 4
		runes := []rune(text)
		if len(runes) <= limit {
			return text
		}
		return string(runes[:limit])
	}
	tokens := t.encoding.Encode(text, nil, nil)
	if len(tokens) <= t.maxTokens {
		return text
	}
	return t.encoding.Decode(tokens[:t.maxTokens])
}
