package grading

import (
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// indelParams weights a substitution as a delete plus an insert, which
// turns the edit distance into an insert/delete distance.
var indelParams = levenshtein.NewParams().InsCost(1).DelCost(1).SubCost(2)

// Similarity returns a 0–100 score of how alike a and b are:
// 100 * (1 - indel(a, b) / (len(a) + len(b))), counted in runes. Two empty
// strings are identical; one empty string scores zero.
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la+lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}
	d := levenshtein.Distance(a, b, indelParams)
	return 100 * (1 - float64(d)/float64(la+lb))
}
