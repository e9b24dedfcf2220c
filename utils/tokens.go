package utils

import (
	"regexp"
	"strings"
)

var (
	columnGap   = regexp.MustCompile(`\s{2,}|\t`)
	numericWord = regexp.MustCompile(`^[-$(]*[0-9][0-9.,/]*\)?$|^[-$]*\.[0-9]+$`)
)

// SplitOCRText turns OCR page text into statement tokens. Lines are split on
// wide gaps; inside a run, label words stay joined and every numeric word
// becomes its own token.
func SplitOCRText(text string) []string {
	var tokens []string
	for _, line := range strings.Split(text, "\n") {
		for _, run := range columnGap.Split(line, -1) {
			tokens = append(tokens, splitRun(run)...)
		}
	}
	return tokens
}

func splitRun(run string) []string {
	var (
		out   []string
		label []string
	)
	flush := func() {
		if len(label) > 0 {
			out = append(out, strings.Join(label, " "))
			label = label[:0]
		}
	}
	for _, word := range strings.Fields(run) {
		if numericWord.MatchString(word) {
			flush()
			out = append(out, word)
			continue
		}
		label = append(label, word)
	}
	flush()
	return out
}
