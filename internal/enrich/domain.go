package enrich

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"opsdesk-engine/internal/store"
)

// Free mail providers and aggregators that must never be taken for a
// company's own domain. Config can extend this via enrich.blocked_domains.
var domainBlocklist = []string{
	"gmail.com",
	"yahoo.com",
	"hotmail.com",
	"outlook.com",
	"aol.com",
	"icloud.com",
	"me.com",
	"msn.com",
	"comcast.net",
	"att.net",
	"verizon.net",

	// directories / review sites
	"yelp.com",
	"facebook.com",
	"instagram.com",
	"angi.com",
	"homeadvisor.com",
	"thumbtack.com",
	"bbb.org",
	"yellowpages.com",
	"mapquest.com",
	"wikipedia.org",
}

type Lookup struct {
	Limiter *HostLimiter
	Extra   []string // extra blocked domains from config
}

func NewLookup(extraBlocked []string) *Lookup {
	return &Lookup{
		Limiter: NewHostLimiter(1, 2),
		Extra:   extraBlocked,
	}
}

// GetOrFindCompanyDomain resolves a company name to its website domain:
// cache, then the contact's own email domain, then a DDG search.
func (l *Lookup) GetOrFindCompanyDomain(ctx context.Context, db *sql.DB, company, contactEmail string) (string, error) {
	// 1) cached?
	d, err := store.GetCompanyDomain(ctx, db, company)
	if err != nil {
		return "", err
	}
	if d != "" {
		return d, nil
	}

	// 2) the email domain usually IS the company domain for small shops
	if at := strings.LastIndexByte(contactEmail, '@'); at >= 0 {
		host := strings.ToLower(strings.TrimSpace(contactEmail[at+1:]))
		if host != "" && !l.isBlockedDomain(host) {
			if err := store.UpsertCompanyDomain(ctx, db, company, host); err != nil {
				return "", err
			}
			return host, nil
		}
	}

	// 3) search
	found, err := l.FindCompanyDomainDDG(ctx, company)
	if err != nil {
		return "", err
	}
	if found == "" || l.isBlockedDomain(found) {
		return "", nil
	}

	// 4) store
	if err := store.UpsertCompanyDomain(ctx, db, company, found); err != nil {
		return "", err
	}
	return found, nil
}

func (l *Lookup) FindCompanyDomainDDG(ctx context.Context, company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", nil
	}

	// Make query less noisy
	q := sanitizeCompanyForSearch(company)
	query := fmt.Sprintf("%s official website", q)

	u := "https://duckduckgo.com/html/?q=" + url.QueryEscape(query)

	if err := l.Limiter.WaitURL(ctx, u); err != nil {
		return "", err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")

	client := &http.Client{Timeout: 12 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", nil
	}

	var best string

	// DDG HTML results: <a class="result__a" href="...">
	doc.Find("a.result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}

		target := decodeDDGRedirect(href)
		host := hostFromURL(target)
		if host == "" {
			return true
		}

		host = strings.ToLower(strings.TrimPrefix(host, "www."))
		if l.isBlockedDomain(host) {
			return true
		}

		best = host
		return false // stop at first good domain
	})

	return best, nil
}

func decodeDDGRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	// DDG sometimes uses /l/?uddg=<urlencoded>
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}

func hostFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func (l *Lookup) isBlockedDomain(host string) bool {
	for _, b := range domainBlocklist {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	for _, b := range l.Extra {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" {
			continue
		}
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}

func sanitizeCompanyForSearch(s string) string {
	s = strings.TrimSpace(s)
	// remove common suffixes that confuse search
	repls := []string{
		", Inc.", "", " Inc.", "", " Inc", "",
		", LLC", "", " LLC", "",
		", Ltd.", "", " Ltd.", "", " Ltd", "",
		" Co.", "",
	}
	r := strings.NewReplacer(repls...)
	s = r.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
