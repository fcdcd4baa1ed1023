package linguachain

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the per-text result of TranslateBatch.
type BatchItem struct {
	Index  int     // Position in the input slice
	Text   string  // Input text
	Result *Result // Set on success
	Err    error   // Set on failure
}

// TranslateBatch translates texts concurrently, at most WithConcurrency at a
// time. Each text runs its own sequential provider chain; texts that are
// identical after trimming are translated once. Items are returned in input
// order and a failure of one item does not affect the others.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string, targetLang string) []BatchItem {
	items := make([]BatchItem, len(texts))
	if len(texts) == 0 {
		return items
	}

	// Deduplicate by trimmed text, preserving the first index as the leader.
	leaders := make(map[string]int, len(texts))
	var unique []int
	for i, text := range texts {
		items[i] = BatchItem{Index: i, Text: text}
		key := strings.TrimSpace(text)
		if _, seen := leaders[key]; !seen {
			leaders[key] = i
			unique = append(unique, i)
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(t.concurrency)

	for _, idx := range unique {
		idx := idx
		g.Go(func() error {
			result, err := t.Translate(ctx, texts[idx], targetLang)
			items[idx].Result = result
			items[idx].Err = err
			// Per-item failures are reported through the item, not the group.
			return nil
		})
	}
	_ = g.Wait()

	for i, text := range texts {
		leader := leaders[strings.TrimSpace(text)]
		if leader != i {
			items[i].Result = items[leader].Result
			items[i].Err = items[leader].Err
		}
	}

	t.logger.WithField("count", len(texts)).WithField("unique", len(unique)).Debug("Batch translation finished")

	return items
}
