package generation

import (
	"context"
	"strings"
)

// MaxWordsPerBatch caps the number of words a single generation returns.
const MaxWordsPerBatch = 10

// GeneratedWord is one vocabulary entry proposed by the language model.
type GeneratedWord struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
	Type    string `json:"type"`
}

// Batch is the result of a generation call: a topic and its words.
type Batch struct {
	Topic string          `json:"topic"`
	Words []GeneratedWord `json:"words"`
}

// Generator defines the interface for generating vocabulary with an LLM.
// This interface serves as a boundary between the application core and
// external AI services.
type Generator interface {
	// GenerateGroup proposes a new topic that is not in excludedTopics,
	// together with up to MaxWordsPerBatch words for it.
	GenerateGroup(ctx context.Context, excludedTopics []string) (*Batch, error)

	// GenerateWords proposes up to MaxWordsPerBatch new words for topic,
	// avoiding every entry of excludedWords.
	GenerateWords(ctx context.Context, topic string, excludedWords []string) (*Batch, error)
}

// Normalize trims the batch, drops incomplete or excluded entries and
// duplicates, and caps it at MaxWordsPerBatch. Exclusion is case-insensitive.
func (b *Batch) Normalize(excluded []string) {
	skip := make(map[string]struct{}, len(excluded)+len(b.Words))
	for _, w := range excluded {
		skip[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	b.Topic = strings.TrimSpace(b.Topic)
	kept := b.Words[:0]
	for _, w := range b.Words {
		w.Word = strings.TrimSpace(w.Word)
		w.Meaning = strings.TrimSpace(w.Meaning)
		w.Type = strings.TrimSpace(w.Type)
		if w.Word == "" || w.Meaning == "" {
			continue
		}
		key := strings.ToLower(w.Word)
		if _, ok := skip[key]; ok {
			continue
		}
		skip[key] = struct{}{}
		kept = append(kept, w)
		if len(kept) == MaxWordsPerBatch {
			break
		}
	}
	b.Words = kept
}
