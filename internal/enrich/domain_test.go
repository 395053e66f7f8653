package enrich

import "testing"

func TestIsBlockedDomain(t *testing.T) {
	l := NewLookup([]string{"example-isp.net"})
	cases := []struct {
		host string
		want bool
	}{
		{"gmail.com", true},
		{"mail.gmail.com", true},
		{"notgmail.com", false},
		{"mercerplumbing.com", false},
		{"example-isp.net", true},
		{"smtp.example-isp.net", true},
		{"yelp.com", true},
	}
	for _, c := range cases {
		if got := l.isBlockedDomain(c.host); got != c.want {
			t.Errorf("isBlockedDomain(%q) = %v, want %v", c.host, got, c.want)
		}
	}
}

func TestSanitizeCompanyForSearch(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Mercer Plumbing LLC", "Mercer Plumbing"},
		{"ABC Construction, Inc.", "ABC Construction"},
		{"  Lee   Electric  ", "Lee Electric"},
		{"Smith & Sons Co.", "Smith & Sons"},
	}
	for _, c := range cases {
		if got := sanitizeCompanyForSearch(c.in); got != c.want {
			t.Errorf("sanitizeCompanyForSearch(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDecodeDDGRedirect(t *testing.T) {
	in := "/l/?uddg=https%3A%2F%2Fmercerplumbing.com%2F&rut=abc"
	if got := decodeDDGRedirect(in); got != "https://mercerplumbing.com/" {
		t.Errorf("decodeDDGRedirect = %q", got)
	}
	direct := "https://example.com/page"
	if got := decodeDDGRedirect(direct); got != direct {
		t.Errorf("direct URL changed: %q", got)
	}
}
