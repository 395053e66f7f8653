// Package smartimport turns unstructured text (pasted notes, voice
// transcripts, OCR output, email signatures, business-card blocks,
// CSV-ish blobs) into deduplicated contact candidates.
//
// Everything here is pure string processing: no I/O, no shared state.
// Callers that capture text (clipboard, IMAP, OCR) live elsewhere and
// hand this package plain text only.
package smartimport

// Candidate is one possibly-duplicate contact pulled out of raw text.
//
// Field convention: empty string means "not found". Extractors never emit a
// present-but-empty field, so "" is unambiguous everywhere downstream.
type Candidate struct {
	Name    string `json:"name,omitempty"`
	Company string `json:"companyName,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// IsZero reports whether no field was found at all.
func (c Candidate) IsZero() bool {
	return c == Candidate{}
}
