package quiz

import (
	"fmt"
	"testing"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpusOf(cat corpus.Category, n int) []corpus.Item {
	items := make([]corpus.Item, n)
	for i := range items {
		items[i] = corpus.Item{
			TargetText: fmt.Sprintf("%s-%d", cat, i),
			Meaning:    fmt.Sprintf("meaning %d", i),
			Category:   cat,
		}
	}
	return items
}

func TestSampleDistractors_Properties(t *testing.T) {
	items := append(corpusOf(corpus.CategoryWord, 8), corpusOf(corpus.CategoryChar, 8)...)
	target := items[2]
	rng := testRand(3)

	for i := 0; i < 100; i++ {
		got := SampleDistractors(rng, items, target, 3)
		require.Len(t, got, 3)
		seen := map[string]bool{}
		for _, d := range got {
			assert.NotEqual(t, target.ID(), d.ID())
			assert.Equal(t, corpus.CategoryWord, d.Category)
			assert.False(t, seen[d.ID()], "duplicate distractor %s", d.ID())
			seen[d.ID()] = true
		}
	}
}

func TestSampleDistractors_SmallPool(t *testing.T) {
	items := corpusOf(corpus.CategorySentence, 3)
	got := SampleDistractors(testRand(4), items, items[0], 3)
	assert.Len(t, got, 2)
	assert.ElementsMatch(t, []corpus.Item{items[1], items[2]}, got)

	alone := SampleDistractors(testRand(4), items[:1], items[0], 3)
	assert.Empty(t, alone)
}

func TestBuildOptions_ExactlyOneCorrect(t *testing.T) {
	items := corpusOf(corpus.CategoryChar, 6)
	rng := testRand(5)
	positions := map[int]bool{}
	for i := 0; i < 100; i++ {
		opts := BuildOptions(rng, items, items[4])
		require.Len(t, opts, 4)
		correct := 0
		for j, o := range opts {
			if o.ID() == items[4].ID() {
				correct++
				positions[j] = true
			}
		}
		assert.Equal(t, 1, correct)
	}
	assert.Greater(t, len(positions), 1, "target should not always land in the same slot")
}

func TestNewRound(t *testing.T) {
	items := corpusOf(corpus.CategoryWord, 5)
	sel := spacedrep.Selection{Item: items[1], Pool: spacedrep.PoolReview, DueCount: 5}

	r, err := NewRound(testRand(6), items, sel)
	require.NoError(t, err)
	assert.Equal(t, items[1], r.Item)
	assert.True(t, r.IsReview())
	assert.Equal(t, 5, r.DueCount)
	if r.Modality.IsChoice() {
		require.Len(t, r.Options, 4)
		idx := r.CorrectIndex()
		require.GreaterOrEqual(t, idx, 0)
		assert.Len(t, r.OptionLabels(), 4)
	} else {
		assert.Empty(t, r.Options)
	}
}

func TestNewRound_UnknownCategory(t *testing.T) {
	sel := spacedrep.Selection{Item: corpus.Item{TargetText: "x", Category: "Idiom"}}
	_, err := NewRound(testRand(7), nil, sel)
	assert.ErrorIs(t, err, ErrNoModality)
}

func TestRound_OptionLabelUsesModalityField(t *testing.T) {
	items := corpusOf(corpus.CategoryWord, 1)
	r := &Round{Item: items[0], Modality: WordTextToMeaning, Options: items}
	assert.Equal(t, "meaning 0", r.OptionLabel(0))

	r.Modality = WordAudioToText
	assert.Equal(t, "Word-0", r.OptionLabel(0))
}
