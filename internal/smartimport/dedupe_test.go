package smartimport

import "testing"

func TestDeduplicateByEmail(t *testing.T) {
	in := []Candidate{
		{Name: "Bob Smith", Email: "bob@x.com"},
		{Name: "Robert Smith", Email: "BOB@X.COM", Phone: "(555) 111-2222", Address: "1 Elm St, Reno, NV 89501"},
	}
	got := Deduplicate(in)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}
	c := got[0]
	if c.Name != "Bob Smith" {
		t.Errorf("first-seen owner should keep its name, got %q", c.Name)
	}
	if c.Phone != "(555) 111-2222" || c.Address != "1 Elm St, Reno, NV 89501" {
		t.Errorf("duplicate fields not merged: %+v", c)
	}
}

func TestDeduplicateByPhoneDigits(t *testing.T) {
	in := []Candidate{
		{Name: "Ann Lee", Phone: "(555) 123-4567"},
		{Name: "Ann Lee", Phone: "555.123.4567", Company: "Lee Inc"},
	}
	got := Deduplicate(in)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}
	if got[0].Company != "Lee Inc" {
		t.Errorf("company not merged: %+v", got[0])
	}
}

func TestDeduplicateByNameCompany(t *testing.T) {
	in := []Candidate{
		{Name: "Ann Lee", Company: "Lee Inc"},
		{Name: "ann lee", Company: "lee inc", Email: "ann@leeinc.com"},
	}
	got := Deduplicate(in)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}
	if got[0].Email != "ann@leeinc.com" {
		t.Errorf("email not merged: %+v", got[0])
	}
}

func TestDeduplicateMultiKeyAliasing(t *testing.T) {
	// First candidate registers under both its email and phone; a later
	// candidate sharing only the phone still merges into it.
	in := []Candidate{
		{Name: "Cal Ross", Email: "cal@ross.co", Phone: "(555) 999-8888"},
		{Name: "C Ross", Phone: "555-999-8888", Address: "9 Oak Dr, Boise, ID 83702"},
	}
	got := Deduplicate(in)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}
	if got[0].Address == "" {
		t.Errorf("address not merged via phone key: %+v", got[0])
	}
}

func TestDeduplicateKeylessCandidatesSurvive(t *testing.T) {
	// Name alone (no company, email, phone) generates no keys: literal
	// repeats all survive. Latent behavior, preserved deliberately.
	in := []Candidate{
		{Name: "Solo Name"},
		{Name: "Solo Name"},
	}
	got := Deduplicate(in)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2: %+v", len(got), got)
	}
}

func TestDeduplicateNeverGrows(t *testing.T) {
	in := []Candidate{
		{Name: "A B", Email: "a@b.co"},
		{Name: "C D", Email: "c@d.co"},
		{Name: "E F", Email: "a@b.co"},
		{Name: "G H"},
	}
	if got := Deduplicate(in); len(got) > len(in) {
		t.Errorf("dedup grew the set: %d > %d", len(got), len(in))
	}
}

func TestDeduplicateDoesNotAdoptDuplicateName(t *testing.T) {
	// Merge fills company/email/phone/address only; an owner without a name
	// stays nameless even when the duplicate has one.
	in := []Candidate{
		{Company: "Acme Inc", Email: "info@acme.com"},
		{Name: "Amy Acme", Email: "info@acme.com"},
	}
	got := Deduplicate(in)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}
	if got[0].Name != "" {
		t.Errorf("owner unexpectedly adopted the duplicate's name: %+v", got[0])
	}
}
