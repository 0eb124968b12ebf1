package quiz

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/abhisek/lingodrill/internal/corpus"
)

// ErrNoModality is returned when an item's category has no modality rule.
var ErrNoModality = errors.New("no modality for category")

// modeRule unlocks modalities once mastery is strictly above minMastery.
type modeRule struct {
	minMastery int
	modalities []Modality
}

// noGate is below any reachable mastery so the rule always applies.
const noGate = math.MinInt

var modeTable = map[corpus.Category][]modeRule{
	corpus.CategoryChar: {
		{noGate, []Modality{CharPronToText, CharTextToMeaning}},
		{1, []Modality{CharWritingBlind}},
		{3, []Modality{CharDictation}},
	},
	corpus.CategoryWord: {
		{noGate, []Modality{WordTextToMeaning, WordAudioToText}},
		{1, []Modality{WordWritingCopy}},
		{3, []Modality{WordDictation}},
	},
	corpus.CategorySentence: {
		{noGate, []Modality{SentenceAudioToMeaning, SentenceReadAloud, SentenceShadowing}},
		{1, []Modality{SentenceWritingCopy}},
	},
}

// EligibleModes returns the modalities unlocked for a category at the
// given mastery, in table order. Unknown categories have none.
func EligibleModes(c corpus.Category, mastery int) []Modality {
	var out []Modality
	for _, r := range modeTable[c] {
		if mastery > r.minMastery {
			out = append(out, r.modalities...)
		}
	}
	return out
}

// ChooseMode picks one eligible modality uniformly at random. It returns
// ModalityUnknown when the category has no rule.
func ChooseMode(rng *rand.Rand, c corpus.Category, mastery int) Modality {
	modes := EligibleModes(c, mastery)
	if len(modes) == 0 {
		return ModalityUnknown
	}
	return modes[rng.IntN(len(modes))]
}
