package sheet

import "strings"

// field identifies a persisted item attribute.
type field int

const (
	fieldTarget field = iota
	fieldTTS
	fieldPronunciation
	fieldMeaning
	fieldCategory
	fieldMastery
	fieldNextDue
	numFields
)

// canonicalHeaders are written for new workbooks.
var canonicalHeaders = [numFields]string{
	"target_text", "tts_text", "pronunciation", "meaning",
	"category", "mastery_count", "next_due_date",
}

// headerAliases maps normalized header names to fields. The short names
// come from hand-kept vocabulary sheets.
var headerAliases = map[string]field{
	"targettext":    fieldTarget,
	"target":        fieldTarget,
	"thai":          fieldTarget,
	"text":          fieldTarget,
	"ttstext":       fieldTTS,
	"tts":           fieldTTS,
	"pronunciation": fieldPronunciation,
	"meaning":       fieldMeaning,
	"category":      fieldCategory,
	"masterycount":  fieldMastery,
	"mastery":       fieldMastery,
	"times":         fieldMastery,
	"nextduedate":   fieldNextDue,
	"nextdue":       fieldNextDue,
	"next":          fieldNextDue,
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer("_", "", " ", "", "-", "").Replace(h)
}

// layout records where each field lives in a sheet and what its header
// was called, so a save writes back the same header names.
type layout struct {
	index   [numFields]int
	headers [numFields]string
}

func defaultLayout() layout {
	var l layout
	for i := range l.index {
		l.index[i] = i
		l.headers[i] = canonicalHeaders[i]
	}
	return l
}

// parseHeader maps a header row. Unknown columns are ignored and missing
// ones get index -1.
func parseHeader(row []string) layout {
	var l layout
	for i := range l.index {
		l.index[i] = -1
		l.headers[i] = canonicalHeaders[i]
	}
	for col, h := range row {
		f, ok := headerAliases[normalizeHeader(h)]
		if !ok || l.index[f] >= 0 {
			continue
		}
		l.index[f] = col
		l.headers[f] = strings.TrimSpace(h)
	}
	return l
}

func (l layout) cell(row []string, f field) string {
	i := l.index[f]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
