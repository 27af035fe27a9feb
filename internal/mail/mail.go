// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mail sends admin notifications for contact messages and visitor
// registrations over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"spicehouse/internal/models"
)

// Message is a plain-text email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Sender delivers messages through an SMTP server.
type Sender struct {
	from string
	send func(m *gomail.Message) error
}

// NewSender returns a Sender dialing host:port for every message. An empty
// user disables SMTP authentication.
func NewSender(host string, port int, user, password, from string) *Sender {
	d := gomail.NewDialer(host, port, user, password)
	return &Sender{from: from, send: func(m *gomail.Message) error {
		return d.DialAndSend(m)
	}}
}

// Send delivers msg. The SMTP exchange itself is not cancellable; ctx is
// only checked before dialing.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("send mail %q: no recipient", msg.Subject)
	}
	if err := s.send(s.build(msg)); err != nil {
		return fmt.Errorf("send mail %q: %w", msg.Subject, err)
	}
	slog.Info("mail sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (s *Sender) build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return m
}

// Discard drops every message. Used when SMTP is not configured.
type Discard struct{}

// Send logs the message at debug level and returns nil.
func (Discard) Send(_ context.Context, msg Message) error {
	slog.Debug("mail disabled, message dropped", "to", msg.To, "subject", msg.Subject)
	return nil
}

// ContactNotification builds the admin notification for a contact message.
func ContactNotification(to string, c *models.ContactMessage) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	fmt.Fprintf(&b, "\n%s\n", c.Message)

	return Message{
		To:      to,
		ReplyTo: c.Email,
		Subject: "New contact message from " + c.Name,
		Body:    b.String(),
	}
}

// RegistrationNotification builds the admin notification for a visitor
// registration.
func RegistrationNotification(to string, v *models.VisitorRegistration) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", v.Name)
	fmt.Fprintf(&b, "Email: %s\n", v.Email)
	fmt.Fprintf(&b, "Phone: %s\n", v.Phone)
	optional := []struct {
		label string
		value *string
	}{
		{"Company", v.Company},
		{"Country", v.Country},
		{"Message", v.Message},
	}
	for _, o := range optional {
		if o.value != nil && *o.value != "" {
			fmt.Fprintf(&b, "%s: %s\n", o.label, *o.value)
		}
	}

	return Message{
		To:      to,
		ReplyTo: v.Email,
		Subject: "New visitor registration: " + v.Name,
		Body:    b.String(),
	}
}
