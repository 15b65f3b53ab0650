package mailer

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/pkg/mailer/templates"
)

// Deliverer hands an email job to a transport.
type Deliverer interface {
	Deliver(ctx context.Context, job EmailJob) error
}

// Sender sends one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// JSONPublisher is satisfied by helpers.RabbitQueue.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Prepare renders job.Template when set, otherwise returns the job's own content.
func Prepare(job EmailJob) (subject, text, html string, err error) {
	if job.To == "" {
		return "", "", "", errors.New("email job has no recipient")
	}
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	return templates.Render(job.Template, job.Data)
}

// DirectDeliverer renders and sends in-process.
type DirectDeliverer struct {
	Sender Sender
}

func (d *DirectDeliverer) Deliver(ctx context.Context, job EmailJob) error {
	subject, text, html, err := Prepare(job)
	if err != nil {
		return err
	}
	return d.Sender.Send(ctx, job.To, subject, text, html)
}

// QueueDeliverer publishes the job for cmd/email_worker.
type QueueDeliverer struct {
	Publisher JSONPublisher
}

func (q *QueueDeliverer) Deliver(ctx context.Context, job EmailJob) error {
	if job.To == "" {
		return errors.New("email job has no recipient")
	}
	return q.Publisher.PublishJSON(ctx, job)
}

// DisabledDeliverer only logs; used when MAIL_SEND_ENABLED=false.
type DisabledDeliverer struct {
	Logger *logrus.Logger
}

func (d *DisabledDeliverer) Deliver(_ context.Context, job EmailJob) error {
	if d.Logger != nil {
		d.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("mail sending disabled; skipped")
	}
	return nil
}
