package smartimport

import "regexp"

// companySuffixRe spots the org-ish tokens a trades business actually runs
// into. "co" alone is too ambiguous (state code CO, "co-op"), so it only
// counts with a trailing period.
var companySuffixRe = regexp.MustCompile(`(?i)\b(?:inc|llc|corp|company|ltd|group|services|construction|electric|plumbing|hvac)\b|\bco\.`)

// companyPhraseRe grabs a capitalized phrase ending in a company suffix,
// e.g. "ABC Construction" or "Smith & Sons Inc". It deliberately refuses to
// cross a comma so a list of names can't get swallowed into the company, and
// it keeps consuming stacked suffix tokens so "Mercer Plumbing LLC" isn't
// cut short at "Plumbing".
var companyPhraseRe = regexp.MustCompile(`\b[A-Z][A-Za-z0-9&.' \-]*?(?:Inc\.?|LLC|Corp\.?|Company|Co\.|Ltd\.?|Group|Services|Construction|Electric|Plumbing|HVAC)\b(?:[ \t]+(?:Inc\.?|LLC|Corp\.?|Ltd\.?)\b|[ \t]+Co\.)*`)

// companyLabelRe matches an explicit "company: Acme" style label.
var companyLabelRe = regexp.MustCompile(`(?i)(?:company|org|employer)\s*:\s*([^\n,;]+)`)

// jobTitleRe lines are noise on business cards, never a person or a company.
var jobTitleRe = regexp.MustCompile(`(?i)\b(?:president|ceo|manager|director|owner|foreman|supervisor)\b`)

func hasCompanySuffix(s string) bool {
	return companySuffixRe.MatchString(s)
}
