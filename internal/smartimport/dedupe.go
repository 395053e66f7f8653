package smartimport

import "strings"

// Deduplicate collapses candidates that share an email, a phone number, or a
// name+company pair. The first candidate seen under any key owns it; later
// candidates sharing one of its keys merge into it, filling only fields the
// owner is missing. Output preserves first-seen order.
//
// A candidate with no email, no phone, and no complete name+company pair has
// no keys at all and therefore never merges with anything; even a literal
// repeat of it survives on its own.
func Deduplicate(in []Candidate) []Candidate {
	byKey := make(map[string]*Candidate)
	var owners []*Candidate

	for _, c := range in {
		keys := dedupeKeys(c)

		var owner *Candidate
		for _, k := range keys {
			if o, ok := byKey[k]; ok {
				owner = o
				break
			}
		}

		if owner != nil {
			if owner.Company == "" {
				owner.Company = c.Company
			}
			if owner.Email == "" {
				owner.Email = c.Email
			}
			if owner.Phone == "" {
				owner.Phone = c.Phone
			}
			if owner.Address == "" {
				owner.Address = c.Address
			}
			continue
		}

		nc := c
		owners = append(owners, &nc)
		for _, k := range keys {
			byKey[k] = &nc
		}
	}

	out := make([]Candidate, 0, len(owners))
	for _, o := range owners {
		out = append(out, *o)
	}
	return out
}

func dedupeKeys(c Candidate) []string {
	var keys []string
	if c.Email != "" {
		keys = append(keys, "email:"+strings.ToLower(c.Email))
	}
	if c.Phone != "" {
		if d := digitsOnly(c.Phone); d != "" {
			keys = append(keys, "phone:"+d)
		}
	}
	if c.Name != "" && c.Company != "" {
		keys = append(keys, "name-company:"+strings.ToLower(c.Name+c.Company))
	}
	return keys
}
