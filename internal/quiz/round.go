package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/spacedrep"
)

// Round is one presented question.
type Round struct {
	Item     corpus.Item
	Modality Modality

	// Options is empty unless the modality is multiple choice.
	Options []corpus.Item

	Pool     spacedrep.Pool
	DueCount int
}

// NewRound builds a round for the selected item. Multiple-choice options
// are drawn from items.
func NewRound(rng *rand.Rand, items []corpus.Item, sel spacedrep.Selection) (*Round, error) {
	m := ChooseMode(rng, sel.Item.Category, sel.Item.Mastery)
	if m == ModalityUnknown {
		return nil, ErrNoModality
	}
	r := &Round{
		Item:     sel.Item,
		Modality: m,
		Pool:     sel.Pool,
		DueCount: sel.DueCount,
	}
	if m.IsChoice() {
		r.Options = BuildOptions(rng, items, sel.Item)
	}
	return r, nil
}

// OptionLabel returns the text shown for option i.
func (r *Round) OptionLabel(i int) string {
	it := r.Options[i]
	if r.Modality.OptionField() == OptionMeaning {
		return it.Meaning
	}
	return it.TargetText
}

// OptionLabels returns the text of every option.
func (r *Round) OptionLabels() []string {
	labels := make([]string, len(r.Options))
	for i := range r.Options {
		labels[i] = r.OptionLabel(i)
	}
	return labels
}

// CorrectIndex returns the index of the target among the options, or -1.
func (r *Round) CorrectIndex() int {
	for i, it := range r.Options {
		if it.ID() == r.Item.ID() {
			return i
		}
	}
	return -1
}

// Cue returns the text shown as the question, if any. Audio-only prompts
// return an empty string.
func (r *Round) Cue() string {
	switch r.Modality {
	case CharPronToText:
		return r.Item.Pronunciation
	case CharWritingBlind:
		return r.Item.Pronunciation + "  (" + r.Item.Meaning + ")"
	case CharTextToMeaning, WordTextToMeaning, SentenceReadAloud:
		return r.Item.TargetText
	case WordWritingCopy, SentenceWritingCopy:
		return r.Item.TargetText + "  (" + r.Item.Meaning + ")"
	}
	return ""
}

// IsReview reports whether the item came from the due pool.
func (r *Round) IsReview() bool {
	return r.Pool == spacedrep.PoolReview
}
