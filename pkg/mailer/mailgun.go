package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// OrderTag labels every storefront message in Mailgun analytics.
const OrderTag = "storefront-order"

const defaultSendTimeout = 10 * time.Second

// Mailgun sends the rendered order emails. APIBase overrides the region
// endpoint (for example the EU API); empty keeps the client default.
type Mailgun struct {
	Domain  string
	APIKey  string
	Sender  string
	APIBase string
	Tag     string
	Timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{
		Domain:  domain,
		APIKey:  apiKey,
		Sender:  sender,
		Tag:     OrderTag,
		Timeout: defaultSendTimeout,
	}
}

// Send delivers one message. html is optional; when set it becomes the HTML
// part next to the plain text body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	if to == "" {
		return errors.New("mailgun: recipient is required")
	}
	client := mg.NewMailgun(m.Domain, m.APIKey)
	if m.APIBase != "" {
		client.SetAPIBase(m.APIBase)
	}
	msg := client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if m.Tag != "" {
		if err := msg.AddTag(m.Tag); err != nil {
			return err
		}
	}

	timeout := m.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
