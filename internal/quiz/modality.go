package quiz

import "github.com/abhisek/lingodrill/internal/corpus"

// Modality is one way of quizzing an item.
type Modality string

const (
	ModalityUnknown Modality = ""

	CharPronToText    Modality = "char-pron-to-text"
	CharTextToMeaning Modality = "char-text-to-meaning"
	CharWritingBlind  Modality = "char-writing-blind"
	CharDictation     Modality = "char-dictation"

	WordTextToMeaning Modality = "word-text-to-meaning"
	WordAudioToText   Modality = "word-audio-to-text"
	WordWritingCopy   Modality = "word-writing-copy"
	WordDictation     Modality = "word-dictation"

	SentenceAudioToMeaning Modality = "sentence-audio-to-meaning"
	SentenceReadAloud      Modality = "sentence-read-aloud"
	SentenceShadowing      Modality = "sentence-shadowing"
	SentenceWritingCopy    Modality = "sentence-writing-copy"
)

// Family groups modalities by how the answer is collected and graded.
type Family int

const (
	FamilyNone Family = iota
	FamilyChoice
	FamilyDictation
	FamilySpoken
	FamilyHandwriting
)

func (f Family) String() string {
	switch f {
	case FamilyChoice:
		return "choice"
	case FamilyDictation:
		return "dictation"
	case FamilySpoken:
		return "spoken"
	case FamilyHandwriting:
		return "handwriting"
	}
	return "none"
}

// OptionField says which item field a multiple-choice option displays.
type OptionField int

const (
	OptionTarget OptionField = iota
	OptionMeaning
)

type modalityInfo struct {
	family      Family
	audio       bool
	options     OptionField
	instruction string
}

var catalog = map[Modality]modalityInfo{
	CharPronToText:    {FamilyChoice, false, OptionTarget, "Which character matches this pronunciation?"},
	CharTextToMeaning: {FamilyChoice, false, OptionMeaning, "What does this character stand for?"},
	CharWritingBlind:  {FamilyHandwriting, true, OptionTarget, "Write the character from its sound and meaning."},
	CharDictation:     {FamilyDictation, true, OptionTarget, "Listen and type the character."},

	WordTextToMeaning: {FamilyChoice, false, OptionMeaning, "What does this word mean?"},
	WordAudioToText:   {FamilyChoice, true, OptionTarget, "Listen and pick the word you hear."},
	WordWritingCopy:   {FamilyHandwriting, false, OptionTarget, "Copy this word by hand."},
	WordDictation:     {FamilyDictation, true, OptionTarget, "Listen and type the word."},

	SentenceAudioToMeaning: {FamilyChoice, true, OptionMeaning, "Listen and pick the meaning."},
	SentenceReadAloud:      {FamilySpoken, false, OptionTarget, "Read the sentence aloud."},
	SentenceShadowing:      {FamilySpoken, true, OptionTarget, "Listen, then repeat the sentence."},
	SentenceWritingCopy:    {FamilyHandwriting, false, OptionTarget, "Copy this sentence by hand."},
}

// Modalities returns every known modality.
func Modalities() []Modality {
	out := make([]Modality, 0, len(catalog))
	for _, c := range corpus.Categories {
		for _, r := range modeTable[c] {
			out = append(out, r.modalities...)
		}
	}
	return out
}

// Family returns the modality's grading family.
func (m Modality) Family() Family {
	return catalog[m].family
}

// IsChoice reports whether the modality is multiple choice.
func (m Modality) IsChoice() bool {
	return m.Family() == FamilyChoice
}

// PlaysAudio reports whether the prompt includes the item's audio.
func (m Modality) PlaysAudio() bool {
	return catalog[m].audio
}

// OptionField returns which field multiple-choice options display.
func (m Modality) OptionField() OptionField {
	return catalog[m].options
}

// Instruction returns the prompt line shown to the learner.
func (m Modality) Instruction() string {
	return catalog[m].instruction
}

// Known reports whether m is in the catalog.
func (m Modality) Known() bool {
	_, ok := catalog[m]
	return ok
}
