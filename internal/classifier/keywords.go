package classifier

import (
	"strings"

	"voice-expense-go/internal/taxonomy"
)

// keywordConfidence is reported for any keyword hit. A rule match carries no
// probability mass, so a fixed mid-scale value distinguishes it from a
// confident model answer without pretending to be one.
const keywordConfidence = 0.5

// KeywordClassifier scores each category by how many of its keywords occur as
// substrings of the lower-cased text. Ties break by declared category order;
// zero matches falls back to Miscellaneous.
type KeywordClassifier struct {
	table taxonomy.Keywords
	order []string
}

func NewKeywordClassifier(table taxonomy.Keywords) *KeywordClassifier {
	if table == nil {
		table = taxonomy.DefaultKeywords()
	}
	return &KeywordClassifier{table: table, order: taxonomy.Categories()}
}

func (k *KeywordClassifier) Classify(text string) (string, float64) {
	lower := strings.ToLower(text)

	best, bestScore := taxonomy.Fallback, 0
	for _, cat := range k.order {
		score := 0
		for _, word := range k.table[cat] {
			if strings.Contains(lower, word) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = cat, score
		}
	}
	if bestScore == 0 {
		return taxonomy.Fallback, 0
	}
	return best, keywordConfidence
}
