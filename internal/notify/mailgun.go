// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package notify

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
)

// MailgunEmailer sends ebook attachments through the mailgun API.
type MailgunEmailer struct {
	client mailgun.Mailgun
	from   string
}

/*
NewMailgunEmailer constructs a new [MailgunEmailer].

Parameters:
  - domain: string (Sending domain registered with mailgun)
  - apiKey: string
  - apiBase: string (API root, e.g. https://api.mailgun.net/v3)
  - from: string (From address on outgoing mail)
*/
func NewMailgunEmailer(domain, apiKey, apiBase, from string) *MailgunEmailer {
	client := mailgun.NewMailgun(domain, apiKey)
	if apiBase != "" {
		client.SetAPIBase(apiBase)
	}

	return &MailgunEmailer{
		client: client,
		from:   from,
	}
}

/*
SendMOBI emails one MOBI attachment. The body mirrors the subject: kindle
devices only surface the attachment, so nobody reads it.

Returns:
  - error: Send failures
*/
func (emailer *MailgunEmailer) SendMOBI(context context.Context, to, subject, filename string, attachment []byte) error {
	message := emailer.client.NewMessage(emailer.from, subject, subject, to)
	message.SetHtml("<p>" + subject + "</p>")
	message.AddBufferAttachment(filename, attachment)

	if _, _, err := emailer.client.Send(context, message); err != nil {
		return fmt.Errorf("notify: failed to send email to %s: %w", to, err)
	}

	return nil
}
