package smartimport

import (
	"regexp"
	"strings"
)

// The natural-language parser handles commands people actually type or
// dictate, in three shapes:
//
//	add/create/new NAME from/at/with COMPANY
//	NAME, COMPANY, PHONE            (one per line)
//	contact: NAME (COMPANY) - EMAIL
//
// When none of them hit anywhere in the input it falls back to the
// single-contact heuristic below.
var (
	nlCommandRe = regexp.MustCompile(`(?i)\b(?:add|create|new)\s+([A-Za-z][A-Za-z .'\-]*?)\s+(?:from|at|with)\s+([A-Za-z0-9][A-Za-z0-9 &.'\-]*?)(?:\s*[,.;\n]|$)`)
	nlTripleRe  = regexp.MustCompile(`(?m)^([A-Za-z][A-Za-z .'\-]+?),\s*([A-Za-z0-9][A-Za-z0-9 &.'\-]*?),\s*(\+?1?[\s\-.]?\(?\d{3}\)?[\s\-.]?\d{3}[\s\-.]?\d{4})`)
	nlContactRe = regexp.MustCompile(`(?i)contact:\s*([^(\n]+?)\s*\(([^)\n]+)\)\s*-\s*([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)
)

func parseNatural(input string) []Candidate {
	var out []Candidate

	emit := func(c Candidate, tailFrom int) {
		// Whatever the structural match didn't capture may still sit right
		// after it: scan the rest of the text for the missing fields.
		tail := input[tailFrom:]
		if c.Email == "" {
			c.Email = ExtractEmail(tail)
		}
		if c.Phone == "" {
			c.Phone = ExtractPhone(tail)
		}
		if c.Address == "" {
			c.Address = ExtractAddress(tail)
		}
		out = append(out, c)
	}

	for _, m := range nlCommandRe.FindAllStringSubmatchIndex(input, -1) {
		emit(Candidate{
			Name:    CleanName(input[m[2]:m[3]]),
			Company: CleanCompanyName(input[m[4]:m[5]]),
		}, m[1])
	}
	for _, m := range nlTripleRe.FindAllStringSubmatchIndex(input, -1) {
		emit(Candidate{
			Name:    CleanName(input[m[2]:m[3]]),
			Company: CleanCompanyName(input[m[4]:m[5]]),
			Phone:   NormalizePhone(input[m[6]:m[7]]),
		}, m[1])
	}
	for _, m := range nlContactRe.FindAllStringSubmatchIndex(input, -1) {
		emit(Candidate{
			Name:    CleanName(input[m[2]:m[3]]),
			Company: CleanCompanyName(input[m[4]:m[5]]),
			Email:   strings.ToLower(input[m[6]:m[7]]),
		}, m[1])
	}

	if len(out) == 0 {
		return parseSingle(input)
	}
	return out
}

// capRunRe finds 2-4 consecutive capitalized words on one line, the way a
// person's name shows up in prose.
var capRunRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,3}\b`)

// parseSingle is the last-ditch heuristic for free-form text that looks like
// it describes exactly one person. It returns zero or one candidate.
func parseSingle(input string) []Candidate {
	var c Candidate

	rawEmail := emailRe.FindString(input)
	nameFromEmail := false
	if rawEmail != "" {
		c.Email = strings.ToLower(rawEmail)
		// Placeholder name from the local part ("john.doe" -> "John Doe");
		// a proper name found in the text below replaces it.
		local := c.Email[:strings.IndexByte(c.Email, '@')]
		guess := strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
		if n := CleanName(guess); len(n) >= 2 {
			c.Name = n
			nameFromEmail = true
		}
	}

	var rawPhone string
	for _, re := range phoneRes {
		if rawPhone = re.FindString(input); rawPhone != "" {
			c.Phone = NormalizePhone(rawPhone)
			break
		}
	}

	var rawAddr string
	for _, re := range addressRes {
		if rawAddr = re.FindString(input); rawAddr != "" {
			c.Address = strings.TrimSpace(rawAddr)
			break
		}
	}

	if c.Name == "" || nameFromEmail {
		// Blank out what we already consumed so a phone number or street
		// name can't masquerade as a person.
		rest := input
		for _, raw := range []string{rawEmail, rawPhone, rawAddr} {
			if raw != "" {
				rest = strings.Replace(rest, raw, " ", 1)
			}
		}
		if m := capRunRe.FindString(rest); m != "" {
			c.Name = CleanName(m)
		}
	}

	if m := companyPhraseRe.FindString(input); m != "" {
		c.Company = CleanCompanyName(m)
	} else if m := companyLabelRe.FindStringSubmatch(input); m != nil {
		c.Company = CleanCompanyName(m[1])
	}

	if c.Name == "" && c.Email == "" && c.Company == "" {
		return nil
	}
	return []Candidate{c}
}
