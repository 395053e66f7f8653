package smartimport

import (
	"regexp"
	"strings"
)

var columnSplitRe = regexp.MustCompile(`\t|\s{2,}|,`)

// parseTable handles header-plus-rows text: a first line naming columns
// ("Name  Company  Email ...") followed by one contact per line. Columns are
// separated by tabs, runs of two or more spaces, or commas.
func parseTable(input string) []Candidate {
	lines := strings.Split(input, "\n")
	if len(lines) < 2 {
		return nil
	}

	header := strings.ToLower(lines[0])
	if !strings.Contains(header, "name") &&
		!strings.Contains(header, "company") &&
		!strings.Contains(header, "email") {
		return nil
	}

	fields := make(map[int]string)
	for i, h := range splitColumns(lines[0]) {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		// "company name" is a company column, not a name column
		case strings.Contains(h, "company") || strings.Contains(h, "org"):
			fields[i] = "company"
		case strings.Contains(h, "name"):
			fields[i] = "name"
		case strings.Contains(h, "email"):
			fields[i] = "email"
		case strings.Contains(h, "phone") || strings.Contains(h, "tel"):
			fields[i] = "phone"
		case strings.Contains(h, "address"):
			fields[i] = "address"
		}
	}
	if len(fields) == 0 {
		return nil
	}

	var out []Candidate
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var c Candidate
		for i, val := range splitColumns(line) {
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}
			switch fields[i] {
			case "name":
				c.Name = CleanName(val)
			case "company":
				c.Company = CleanCompanyName(val)
			case "email":
				c.Email = strings.ToLower(val)
			case "phone":
				c.Phone = NormalizePhone(val)
			case "address":
				c.Address = val
			}
		}
		if !c.IsZero() {
			out = append(out, c)
		}
	}
	return out
}

func splitColumns(line string) []string {
	return columnSplitRe.Split(line, -1)
}
