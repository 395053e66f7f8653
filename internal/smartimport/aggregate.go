package smartimport

import "strings"

// ParseSmartInput is the engine's one entry point: raw text in, validated
// and deduplicated candidates out. All five format parsers run over the
// same normalized input; overlap between them is expected and resolved by
// Deduplicate at the end. An empty result means "no contact info found";
// it is never an error.
func ParseSmartInput(text string) []Candidate {
	input := normalizeInput(text)
	if input == "" {
		return nil
	}

	var all []Candidate
	all = append(all, parseNatural(input)...)
	all = append(all, parseTable(input)...)
	all = append(all, parseSignatures(input)...)
	all = append(all, parseCards(input)...)
	all = append(all, parseDelimited(input)...)

	kept := all[:0:0]
	for _, c := range all {
		if Valid(c) {
			kept = append(kept, c)
		}
	}
	return Deduplicate(kept)
}

// normalizeInput fixes line endings and non-breaking spaces but keeps line
// structure intact: the table parser needs its multi-space column gaps and
// the card parser needs its blank lines.
func normalizeInput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")

	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
