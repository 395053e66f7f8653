// Package mailsig harvests contact signatures from an IMAP mailbox.
// Every unseen message's plain-text body becomes one blob for the
// import pipeline; messages are marked seen only after a clean run.
package mailsig

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/emersion/go-imap/v2"

	"opsdesk-engine/internal/config"
	"opsdesk-engine/internal/secrets"
)

type Source struct{}

func (Source) Name() string { return "mailsig" }

func (Source) Harvest(ctx context.Context, cfg config.Config) ([]string, error) {
	if !cfg.Email.Enabled {
		return nil, nil
	}

	password, err := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(cfg))
	if err != nil {
		return nil, fmt.Errorf("mailsig: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Email.IMAPHost, cfg.Email.IMAPPort)
	c, err := dialAndLogin(ctx, addr, cfg.Email.Username, password)
	if err != nil {
		return nil, err
	}
	defer logoutAndClose(c)

	if err := selectMailbox(c, cfg.Email.Mailbox); err != nil {
		return nil, err
	}

	msgs, err := fetchUnseen(ctx, c, cfg.Email.MaxMessages)
	if err != nil {
		return nil, err
	}

	var blobs []string
	var harvested []imap.UID
	for _, m := range msgs {
		body := bodyText(m.RawMessage)
		if strings.TrimSpace(body) == "" {
			harvested = append(harvested, m.UID)
			continue
		}
		// The sender address is a free extra signal for the parsers.
		if m.From != "" && !strings.Contains(body, m.From) {
			body = body + "\n" + m.From
		}
		blobs = append(blobs, body)
		harvested = append(harvested, m.UID)
	}

	if err := markSeen(c, harvested); err != nil {
		// Harvested fine; next run just re-reads the same messages.
		log.Printf("[mailsig] mark seen: %v", err)
	}

	return blobs, nil
}
