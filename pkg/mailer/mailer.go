// Package mailer abstracts outbound mail. Actual delivery is an
// external collaborator; the default implementation only logs.
package mailer

import "log"

type Mailer interface {
	Send(to, subject, body string) error
}

// LogMailer writes outbound mail to the process log. Used in development
// and tests; production wires a real delivery backend behind the same
// interface.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Printf("mail to=%s subject=%q body=%q", to, subject, body)
	return nil
}
