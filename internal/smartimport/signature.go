package smartimport

import (
	"regexp"
	"strings"
)

// signoffRe splits text on the markers people put above or around their
// email signatures.
var signoffRe = regexp.MustCompile(`(?i)--+|—|_{5,}|(?:best regards|sincerely|thanks|regards|sent from)[,:]?`)

var longDigitRunRe = regexp.MustCompile(`\d{4,}`)

// parseSignatures mines the signature blocks of forwarded or pasted email.
// Each block between sign-off markers is tried independently; a block only
// yields a candidate when it carries a name, or both an email and a company.
func parseSignatures(input string) []Candidate {
	var out []Candidate

	for _, block := range signoffRe.Split(input, -1) {
		block = strings.TrimSpace(block)
		if len(block) < 20 || len(block) > 500 {
			continue
		}

		lines := nonBlankLines(block)
		if len(lines) == 0 {
			continue
		}

		var c Candidate
		first := lines[0]
		if len(first) <= 40 && !strings.Contains(first, "@") && !longDigitRunRe.MatchString(first) {
			c.Name = CleanName(first)
		}

		for _, ln := range lines[1:] {
			if e := ExtractEmail(ln); e != "" {
				if c.Email == "" {
					c.Email = e
				}
				continue
			}
			if p := ExtractPhone(ln); p != "" {
				if c.Phone == "" {
					c.Phone = p
				}
				continue
			}
			// a line with no email and no phone that names an org is the company
			if c.Company == "" && hasCompanySuffix(ln) {
				c.Company = CleanCompanyName(ln)
			}
		}

		c.Address = ExtractAddress(strings.Join(lastN(lines, 3), ", "))

		if c.Name != "" || (c.Email != "" && c.Company != "") {
			out = append(out, c)
		}
	}
	return out
}

func nonBlankLines(s string) []string {
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

func lastN(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
