package smartimport

import "testing"

func TestExtractEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"reach me at John.Doe@Example.COM thanks", "john.doe@example.com"},
		{"two: a@b.co and c@d.io", "a@b.co"}, // first one wins
		{"no address here", ""},
		{"almost: not-an-email", ""},
		{"weird+tag%ok@sub.domain.org", "weird+tag%ok@sub.domain.org"},
	}
	for _, c := range cases {
		if got := ExtractEmail(c.in); got != c.want {
			t.Errorf("ExtractEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"call 555-123-4567 today", "(555) 123-4567"},
		{"call 555.123.4567 today", "(555) 123-4567"},
		{"call 555 123 4567 today", "(555) 123-4567"},
		{"call (555) 123-4567 today", "(555) 123-4567"},
		{"call +1 555-123-4567 today", "(555) 123-4567"}, // dash variant matches before the +1 form
		{"call +1 (555) 123-4567", "(555) 123-4567"},
		{"id 5551234567 end", "(555) 123-4567"},
		{"nothing to find", ""},
		{"short 123-4567", ""},
	}
	for _, c := range cases {
		if got := ExtractPhone(c.in); got != c.want {
			t.Errorf("ExtractPhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5551234567", "(555) 123-4567"},
		{"555-123-4567", "(555) 123-4567"},
		{"15551234567", "+1 (555) 123-4567"},
		{"+1 555 123 4567", "+1 (555) 123-4567"},
		// other shapes pass through unmodified (modulo trimming)
		{"+44 20 7946 0958 ", "+44 20 7946 0958"},
		{"x1234", "x1234"},
	}
	for _, c := range cases {
		if got := NormalizePhone(c.in); got != c.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractAddress(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ship to 456 Oak Ave, Boulder, CO 80301 please", "456 Oak Ave, Boulder, CO 80301"},
		{"123 Main St, Suite 4, Denver, CO 80202", "123 Main St, Suite 4, Denver, CO 80202"},
		{"789 Pine Rd Austin, TX 78701", "789 Pine Rd Austin, TX 78701"},
		{"1600 Amphitheatre Pkwy, Mountain View, CA 94043", ""}, // Pkwy not a recognized suffix
		{"just a street name, no number", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := ExtractAddress(c.in); got != c.want {
			t.Errorf("ExtractAddress(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  john   DOE ", "John Doe"},
		{"o'brien, sean!", "O'brien Sean"},
		{"jean-luc picard", "Jean-luc Picard"},
		{"", ""},
		{"@#$", ""},
	}
	for _, c := range cases {
		if got := CleanName(c.in); got != c.want {
			t.Errorf("CleanName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanCompanyName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{" Smith & Sons, Inc. ", "Smith & Sons, Inc."},
		{"ABC   Construction", "ABC Construction"},
		{"Weird|Chars<Here>", "WeirdCharsHere"},
	}
	for _, c := range cases {
		if got := CleanCompanyName(c.in); got != c.want {
			t.Errorf("CleanCompanyName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
