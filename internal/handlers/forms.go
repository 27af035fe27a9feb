// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"spicehouse/internal/mail"
	"spicehouse/internal/models"
	"spicehouse/internal/render"
	"spicehouse/internal/session"
)

// Flash messages shown after form submissions.
const (
	msgRegistered      = "Thanks for registering!"
	msgContactSent     = "Your message was sent successfully!"
	msgContactMailFail = "Message saved but email notification failed."
)

// Forms groups handlers for the contact and registration forms. Every
// submission is stored, then mailed to the admin address.
type Forms struct {
	base
	inquiries  InquiryStore
	mailer     Mailer
	adminEmail string
}

// NewForms creates a new Forms handler group. Notifications go to
// adminEmail; an empty address skips them.
func NewForms(renderer *render.Renderer, sessions SessionSaver, inquiries InquiryStore, mailer Mailer, adminEmail string) *Forms {
	return &Forms{
		base:       base{renderer: renderer, sessions: sessions},
		inquiries:  inquiries,
		mailer:     mailer,
		adminEmail: adminEmail,
	}
}

// Contact renders the empty contact form.
func (f *Forms) Contact(w http.ResponseWriter, r *http.Request) {
	f.renderContact(w, r, http.StatusOK, contactForm{}, nil)
}

// ContactSubmit validates and stores a contact message. Invalid input
// re-renders the form with field errors and the submitted values.
func (f *Forms) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	form := contactForm{
		Name:    formValue(r, "name"),
		Email:   formValue(r, "email"),
		Phone:   formValue(r, "phone"),
		Message: formValue(r, "message"),
	}
	if errs := validateForm(form); errs != nil {
		f.renderContact(w, r, http.StatusUnprocessableEntity, form, errs)
		return
	}

	ctx := r.Context()
	msg := &models.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
	}
	if err := f.inquiries.CreateContact(ctx, msg); err != nil {
		serverError(w, "save contact message", err)
		return
	}

	sess := currentSession(r)
	if err := f.notify(r, mail.ContactNotification(f.adminEmail, msg)); err != nil {
		slog.Error("send contact notification", "contact_id", msg.ID, "error", err)
		sess.AddFlash(session.FlashWarning, msgContactMailFail)
	} else {
		sess.AddFlash(session.FlashSuccess, msgContactSent)
	}
	f.redirect(w, r, sess, "/contact")
}

// Register stores a visitor registration posted from the home page. A
// failed notification is logged only; the visitor is thanked either way.
func (f *Forms) Register(w http.ResponseWriter, r *http.Request) {
	form := registrationForm{
		Name:    formValue(r, "name"),
		Email:   formValue(r, "email"),
		Phone:   formValue(r, "phone"),
		Company: formValue(r, "company"),
		Country: formValue(r, "country"),
		Message: formValue(r, "message"),
	}

	sess := currentSession(r)
	if errs := validateForm(form); errs != nil {
		for _, e := range errs {
			sess.AddFlash(session.FlashError, e.Message)
		}
		f.redirect(w, r, sess, "/")
		return
	}

	ctx := r.Context()
	v := &models.VisitorRegistration{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Company: optional(form.Company),
		Country: optional(form.Country),
		Message: optional(form.Message),
	}
	if err := f.inquiries.CreateRegistration(ctx, v); err != nil {
		serverError(w, "save registration", err)
		return
	}

	if err := f.notify(r, mail.RegistrationNotification(f.adminEmail, v)); err != nil {
		slog.Error("send registration notification", "registration_id", v.ID, "error", err)
	}

	sess.AddFlash(session.FlashSuccess, msgRegistered)
	f.redirect(w, r, sess, "/")
}

// notify sends msg unless no admin address is configured.
func (f *Forms) notify(r *http.Request, msg mail.Message) error {
	if f.adminEmail == "" {
		return nil
	}
	return f.mailer.Send(r.Context(), msg)
}

func (f *Forms) renderContact(w http.ResponseWriter, r *http.Request, status int, form contactForm, errs formErrors) {
	f.page(w, r, status, "contact", &render.PageData{
		Title:   "Contact",
		Section: "contact",
		Data: map[string]any{
			"Form":   form,
			"Errors": errs.Map(),
		},
	})
}
