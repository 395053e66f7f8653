package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleConfig() Config {
	var c Config
	c.App.Port = 38481
	c.Polling.EmailSeconds = 120
	c.Polling.EnrichSeconds = 300
	c.Polling.CleanupHours = 48
	c.Email.Mailbox = "INBOX"
	c.Email.IMAPPort = 993
	c.Email.MaxMessages = 25
	c.Enrich.BlockedDomains = []string{"competitor.example"}
	return c
}

func TestSaveAtomicAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	want := sampleConfig()

	if err := SaveAtomic(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadNilBlockedDomains(t *testing.T) {
	// A nil list saves as "blocked_domains: []" and must load back empty.
	path := filepath.Join(t.TempDir(), "config.yml")
	c := sampleConfig()
	c.Enrich.BlockedDomains = nil
	if err := SaveAtomic(path, c); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Enrich.BlockedDomains) != 0 {
		t.Errorf("blocked domains = %+v, want none", got.Enrich.BlockedDomains)
	}
}

func TestSaveAtomicKeepsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	first := sampleConfig()
	if err := SaveAtomic(path, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := first
	second.App.Port = 40000
	if err := SaveAtomic(path, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("no backup written: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.App.Port != 40000 {
		t.Errorf("port = %d after second save", got.App.Port)
	}
}

func TestSaveAtomicRejectsBadPort(t *testing.T) {
	c := sampleConfig()
	c.App.Port = 0
	if err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), c); err == nil {
		t.Errorf("port 0 accepted")
	}
}

func TestValidateBulletsEveryError(t *testing.T) {
	c := sampleConfig()
	c.App.Port = 0
	c.Polling.EmailSeconds = -1
	c.Email.MaxMessages = -1

	err := Validate(c)
	if err == nil {
		t.Fatal("invalid config validated")
	}
	lines := strings.Split(err.Error(), "\n")
	if len(lines) < 4 {
		t.Fatalf("want one line per error, got %q", err)
	}
	for _, ln := range lines[1:] {
		if !strings.HasPrefix(ln, "- ") {
			t.Errorf("error line %q missing %q prefix", ln, "- ")
		}
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	c := sampleConfig()
	c.Enrich.BlockedDomains = []string{" Gmail.com ", "gmail.com", "", "yahoo.com"}

	out, vr := NormalizeAndValidate(c)
	if !vr.OK() {
		t.Fatalf("unexpected errors: %+v", vr)
	}
	if len(out.Enrich.BlockedDomains) != 2 {
		t.Errorf("blocked domains not deduped: %+v", out.Enrich.BlockedDomains)
	}
}

func TestNormalizeAndValidateEmailRequirements(t *testing.T) {
	c := sampleConfig()
	c.Email.Enabled = true // host and username left blank

	_, vr := NormalizeAndValidate(c)
	if vr.OK() {
		t.Fatalf("blank IMAP settings validated: %+v", vr)
	}
	var sawHost bool
	for _, e := range vr.Errors {
		if strings.Contains(e, "imap_host") {
			sawHost = true
		}
	}
	if !sawHost {
		t.Errorf("no imap_host error in %+v", vr.Errors)
	}
}

func TestNormalizeAndValidatePollingBounds(t *testing.T) {
	c := sampleConfig()
	c.Polling.EmailSeconds = 0
	if _, vr := NormalizeAndValidate(c); vr.OK() {
		t.Errorf("email_seconds=0 validated")
	}

	c = sampleConfig()
	c.Polling.EmailSeconds = 5
	if _, vr := NormalizeAndValidate(c); len(vr.Warnings) == 0 {
		t.Errorf("very low email_seconds produced no warning")
	}
}

func TestEnsureUserConfigCopiesDefault(t *testing.T) {
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default.yml")
	if err := SaveAtomic(defaultPath, sampleConfig()); err != nil {
		t.Fatalf("seed default: %v", err)
	}

	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if filepath.Dir(userPath) != dataDir {
		t.Errorf("user config in %s", userPath)
	}

	// Second call must not clobber user edits.
	edited := sampleConfig()
	edited.App.Port = 40001
	if err := SaveAtomic(userPath, edited); err != nil {
		t.Fatalf("edit: %v", err)
	}
	again, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	got, err := Load(again)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.App.Port != 40001 {
		t.Errorf("user config clobbered: %+v", got.App)
	}
}
