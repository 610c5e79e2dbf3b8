package taxonomy

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadKeywordsXLSX reads a hand-maintained keyword workbook. The first sheet
// must carry a category column and a keyword column; columns are located by
// header heuristics so the sheet can be edited by hand. Rows whose category is not in the closed set are skipped
// quietly. Categories absent from the sheet keep their built-in keywords.
func LoadKeywordsXLSX(path string) (Keywords, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open keyword asset: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("keyword asset has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read keyword rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("keyword asset has no data rows")
	}

	header := rows[0]
	catIdx, wordsIdx := -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "categor") || strings.Contains(l, "label"):
			if catIdx == -1 {
				catIdx = i
			}
		case strings.Contains(l, "keyword") || strings.Contains(l, "word") || strings.Contains(l, "term"):
			if wordsIdx == -1 {
				wordsIdx = i
			}
		}
	}
	if catIdx == -1 || wordsIdx == -1 {
		return nil, fmt.Errorf("keyword asset headers not recognized: %v", header)
	}

	out := DefaultKeywords()
	for i, r := range rows {
		if i == 0 {
			continue
		}
		if catIdx >= len(r) || wordsIdx >= len(r) {
			continue
		}
		cat, ok := Normalize(r[catIdx])
		if !ok {
			continue
		}
		words := splitWords(r[wordsIdx])
		if len(words) == 0 {
			continue
		}
		out[cat] = words
	}
	return out, nil
}

func splitWords(cell string) []string {
	fields := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == '\n'
	})
	var out []string
	for _, w := range fields {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
