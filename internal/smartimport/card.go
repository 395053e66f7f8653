package smartimport

import (
	"regexp"
	"strings"
)

var blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)

// parseCards handles OCR'd business cards: blank-line-separated blocks where
// each block is one card. Field assignment is strictly first-match-wins in
// document order; job-title lines are skipped outright.
func parseCards(input string) []Candidate {
	var out []Candidate

	for _, block := range blankLineRe.Split(input, -1) {
		lines := nonBlankLines(block)
		if len(lines) < 2 {
			continue // a real card never OCRs to a single line
		}

		var c Candidate
		for _, ln := range lines {
			if jobTitleRe.MatchString(ln) {
				continue
			}
			e, p := ExtractEmail(ln), ExtractPhone(ln)
			if e != "" || p != "" {
				if c.Email == "" && e != "" {
					c.Email = e
				}
				if c.Phone == "" && p != "" {
					c.Phone = p
				}
				continue
			}
			if hasCompanySuffix(ln) {
				if c.Company == "" {
					c.Company = CleanCompanyName(ln)
				}
				continue
			}
			if c.Name == "" && wordCount(ln) <= 4 {
				c.Name = CleanName(ln)
			}
		}

		c.Address = ExtractAddress(strings.Join(lastN(lines, 3), ", "))

		if !c.IsZero() {
			out = append(out, c)
		}
	}
	return out
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
