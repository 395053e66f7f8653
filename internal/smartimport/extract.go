package smartimport

import (
	"regexp"
	"strings"
	"unicode"
)

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// phoneRes are tried in order; the first pattern that hits wins, even if a
// later pattern would have matched more of the text.
var phoneRes = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{3}[\-.\s]\d{3}[\-.\s]\d{4}\b`),
	regexp.MustCompile(`\(\d{3}\)[\s\-.]?\d{3}[\s\-.]?\d{4}`),
	regexp.MustCompile(`\+1[\s\-.]?\(?\d{3}\)?[\s\-.]?\d{3}[\s\-.]?\d{4}`),
	regexp.MustCompile(`\b\d{10}\b`),
}

const streetSuffix = `(?:Street|Avenue|Boulevard|Road|Lane|Drive|Court|Place|Circle|Way|St|Ave|Rd|Blvd|Ln|Dr|Ct|Pl|Cir)`

// addressRes go from strict to loose. All of them still require a house
// number, a street-suffix token, a city, a 2-letter state, and a 5-digit ZIP.
var addressRes = []*regexp.Regexp{
	// 456 Oak Ave, Boulder, CO 80301  (optional unit segment between street and city)
	regexp.MustCompile(`\b\d+\s+[A-Za-z0-9 .'\-]+?\s` + streetSuffix + `\.?,\s*(?:[A-Za-z0-9 .#'\-]+,\s*)?[A-Za-z .'\-]+?,?\s*[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`),
	// 456 Oak Ave Boulder, CO 80301  (no comma after the street part)
	regexp.MustCompile(`\b\d+\s+[A-Za-z0-9 .'\-]+?\s` + streetSuffix + `\.?\s+[A-Za-z .'\-]+,\s*[A-Z]{2}\s+\d{5}\b`),
	// newline-tolerant last resort: street line, then city/state/zip
	regexp.MustCompile(`\b\d+\s+[A-Za-z0-9 .'\-]+?\s` + streetSuffix + `\.?,?\s*\n\s*[A-Za-z .'\-]+,\s*[A-Z]{2}\s+\d{5}\b`),
}

var (
	nameJunkRe    = regexp.MustCompile(`[^\w\s'\-]`)
	companyJunkRe = regexp.MustCompile(`[^\w\s&.,'\-]`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
	digitRe       = regexp.MustCompile(`\D`)
)

// ExtractEmail returns the first email address in text, lower-cased, or "".
// Only the first one is used; extra addresses in the same fragment are
// ignored on purpose (the most prominent mention wins).
func ExtractEmail(text string) string {
	return strings.ToLower(emailRe.FindString(text))
}

// ExtractPhone returns the first phone number in text, normalized, or "".
func ExtractPhone(text string) string {
	for _, re := range phoneRes {
		if m := re.FindString(text); m != "" {
			return NormalizePhone(m)
		}
	}
	return ""
}

// ExtractAddress returns the first US-style street address in text, verbatim
// apart from trimming, or "".
func ExtractAddress(text string) string {
	for _, re := range addressRes {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// NormalizePhone formats 10-digit numbers as (XXX) XXX-XXXX and
// 11-digit numbers with a leading 1 as +1 (XXX) XXX-XXXX.
// Anything else passes through untouched.
func NormalizePhone(raw string) string {
	d := digitRe.ReplaceAllString(raw, "")
	switch {
	case len(d) == 10:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	case len(d) == 11 && d[0] == '1':
		return "+1 (" + d[1:4] + ") " + d[4:7] + "-" + d[7:]
	}
	return strings.TrimSpace(raw)
}

// CleanName strips punctuation a person's name can't contain, collapses
// whitespace, and title-cases each word.
func CleanName(raw string) string {
	s := nameJunkRe.ReplaceAllString(raw, "")
	s = spaceRunRe.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return ""
	}
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

// CleanCompanyName is gentler than CleanName: ampersands, periods and commas
// are legitimate in company names ("Smith & Sons, Inc.").
func CleanCompanyName(raw string) string {
	s := companyJunkRe.ReplaceAllString(raw, "")
	s = spaceRunRe.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.Trim(s, " ,")
}

func titleWord(w string) string {
	r := []rune(w)
	for i := range r {
		if i == 0 {
			r[i] = unicode.ToUpper(r[i])
		} else {
			r[i] = unicode.ToLower(r[i])
		}
	}
	return string(r)
}

func digitsOnly(s string) string {
	return digitRe.ReplaceAllString(s, "")
}
