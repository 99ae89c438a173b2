package services

import (
	"context"
	"log"
)

type MailMessage struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, message MailMessage) error
}

// LogMailer writes outgoing mail to the process log instead of delivering it.
type LogMailer struct {
	logger *log.Logger
}

func NewLogMailer(logger *log.Logger) *LogMailer {
	if logger == nil {
		logger = log.Default()
	}
	return &LogMailer{logger: logger}
}

func (mailer *LogMailer) Send(_ context.Context, message MailMessage) error {
	mailer.logger.Printf("mail to=%s subject=%q\n%s", message.To, message.Subject, message.Body)
	return nil
}
