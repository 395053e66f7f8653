package smartimport

import "strings"

var delimiters = []string{",", "\t", "|", ";"}

// parseDelimited handles one-contact-per-line exports: CSV-ish rows without
// a header. Delimiters are tried in a fixed order per line and the first one
// that yields a usable name or company wins; later delimiters are not tried.
func parseDelimited(input string) []Candidate {
	var out []Candidate

	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		low := strings.ToLower(line)
		if strings.Contains(low, "name") && strings.Contains(low, "email") {
			continue // header row; the table parser owns those
		}

		for _, d := range delimiters {
			if !strings.Contains(line, d) {
				continue
			}
			c := candidateFromFields(splitFields(line, d))
			if c.Name != "" || c.Company != "" {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func splitFields(line, delim string) []string {
	fields := strings.Split(line, delim)
	for i, f := range fields {
		f = strings.TrimSpace(f)
		f = strings.Trim(f, `"'`)
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

func candidateFromFields(fields []string) Candidate {
	var c Candidate
	if len(fields) == 0 {
		return c
	}

	rest := fields[1:]
	if hasCompanySuffix(fields[0]) {
		c.Company = CleanCompanyName(fields[0])
		if len(rest) > 0 && ExtractEmail(rest[0]) == "" {
			c.Name = CleanName(rest[0])
			rest = rest[1:]
		}
	} else {
		c.Name = CleanName(fields[0])
		if len(rest) > 0 && ExtractEmail(rest[0]) == "" {
			c.Company = CleanCompanyName(rest[0])
			rest = rest[1:]
		}
	}

	for i, f := range rest {
		if c.Email == "" {
			if e := ExtractEmail(f); e != "" {
				c.Email = e
				continue
			}
		}
		if c.Phone == "" {
			if p := ExtractPhone(f); p != "" {
				c.Phone = p
				continue
			}
		}
		if i == len(rest)-1 && c.Address == "" {
			c.Address = ExtractAddress(f)
		}
	}
	return c
}
