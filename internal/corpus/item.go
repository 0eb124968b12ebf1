package corpus

import (
	"strings"
	"time"
)

// Category groups items by size of the learnable unit. It decides which
// quiz modalities an item is eligible for.
type Category string

const (
	CategoryChar     Category = "Char"
	CategoryWord     Category = "Word"
	CategorySentence Category = "Sentence"
)

// Categories lists the known categories in display order.
var Categories = []Category{CategoryChar, CategoryWord, CategorySentence}

// ParseCategory maps a stored category label to a Category. Matching is
// case-insensitive; unknown labels are returned as-is so they survive a
// load/save round trip.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return Category(s)
}

// Known reports whether c is one of the built-in categories.
func (c Category) Known() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Item is one learnable unit of the corpus.
type Item struct {
	// TargetText is the text to produce or recognize. It identifies the item.
	TargetText string

	// TTSText is fed to speech synthesis. Blank means TargetText.
	TTSText string

	Pronunciation string
	Meaning       string
	Category      Category

	// Mastery is a streak-like counter. It goes up by one per correct
	// round and down by one per wrong round, and may go negative.
	Mastery int

	// NextDue is the calendar day (UTC midnight) the item is due for review.
	NextDue time.Time
}

// ID returns the item's identity key.
func (it Item) ID() string {
	return it.TargetText
}

// SpeechText returns the text used for audio synthesis and for scoring
// spoken answers.
func (it Item) SpeechText() string {
	if t := strings.TrimSpace(it.TTSText); t != "" {
		return t
	}
	return it.TargetText
}

// IsDue returns true if the item is due on the given day.
func (it Item) IsDue(today time.Time) bool {
	return !it.NextDue.After(Day(today))
}
