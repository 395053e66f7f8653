package mailsig

import (
	"strings"
	"testing"
)

func TestBodyTextPlain(t *testing.T) {
	raw := []byte("From: dan@mercerplumbing.com\r\n" +
		"Subject: invoice\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Thanks,\nDan Mercer\nMercer Plumbing LLC\n")
	got := bodyText(raw)
	if !strings.Contains(got, "Dan Mercer\nMercer Plumbing LLC") {
		t.Errorf("body = %q", got)
	}
}

func TestBodyTextMultipartPrefersPlain(t *testing.T) {
	raw := []byte("Subject: hi\r\n" +
		"Content-Type: multipart/alternative; boundary=BB\r\n" +
		"\r\n" +
		"--BB\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"plain body here\r\n" +
		"--BB\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>html body here</p>\r\n" +
		"--BB--\r\n")
	got := bodyText(raw)
	if !strings.Contains(got, "plain body here") {
		t.Errorf("body = %q", got)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("html leaked into body: %q", got)
	}
}

func TestBodyTextQuotedPrintable(t *testing.T) {
	raw := []byte("Subject: hi\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"caf=C3=A9 meeting\r\n")
	got := bodyText(raw)
	if !strings.Contains(got, "café meeting") {
		t.Errorf("body = %q", got)
	}
}

func TestHtmlToLinesKeepsSignatureStack(t *testing.T) {
	in := "<div>Dan Mercer</div><div>Mercer Plumbing LLC</div><div>(555) 867-5309</div>"
	got := htmlToLines(in)
	want := "Dan Mercer\nMercer Plumbing LLC\n(555) 867-5309"
	if got != want {
		t.Errorf("htmlToLines = %q, want %q", got, want)
	}
}

func TestHtmlToLinesSqueezesBlankRuns(t *testing.T) {
	in := "a<br><br><br><br>b"
	if got := htmlToLines(in); strings.Contains(got, "\n\n\n") {
		t.Errorf("blank runs not squeezed: %q", got)
	}
}
