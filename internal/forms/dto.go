package forms

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ContactInput is the payload of the public contact form.
type ContactInput struct {
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone,omitempty"`
	Sujet     string `json:"sujet"`
	Message   string `json:"message"`
}

func (r ContactInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nom, validation.Required.Error("nom is required"), validation.Length(2, 200)),
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("invalid email format")),
		validation.Field(&r.Sujet, validation.Required.Error("sujet is required"), validation.Length(2, 300)),
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(10, 10000).Error("message must be at least 10 characters"),
		),
	)
}

// AvisInput is the payload of the legal-opinion request form, reserved
// to public bodies.
type AvisInput struct {
	Nom            string `json:"nom"`
	Email          string `json:"email"`
	Telephone      string `json:"telephone,omitempty"`
	Administration string `json:"administration"`
	Objet          string `json:"objet"`
	Description    string `json:"description"`
}

func (r AvisInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nom, validation.Required.Error("nom is required"), validation.Length(2, 200)),
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("invalid email format")),
		validation.Field(&r.Administration, validation.Required.Error("administration is required"), validation.Length(2, 300)),
		validation.Field(&r.Objet, validation.Required.Error("objet is required"), validation.Length(2, 300)),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(10, 20000).Error("description must be at least 10 characters"),
		),
	)
}

// SignalementInput is the payload of the irregularity report form.
// Identity fields stay optional so reports can be anonymous.
type SignalementInput struct {
	Nom         string `json:"nom,omitempty"`
	Email       string `json:"email,omitempty"`
	Categorie   string `json:"categorie"`
	Description string `json:"description"`
}

func (r SignalementInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.When(r.Email != "", is.EmailFormat.Error("invalid email format"))),
		validation.Field(&r.Categorie, validation.Required.Error("categorie is required")),
		validation.Field(&r.Description, validation.Required.Error("description is required")),
	)
}

// PresseInput is the payload of the press accreditation form.
type PresseInput struct {
	Nom      string `json:"nom"`
	Email    string `json:"email"`
	Organe   string `json:"organe"`
	Fonction string `json:"fonction,omitempty"`
	Motif    string `json:"motif,omitempty"`
}

func (r PresseInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nom, validation.Required.Error("nom is required")),
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("invalid email format")),
		validation.Field(&r.Organe, validation.Required.Error("organe is required")),
	)
}

// NewsletterInput is the payload of the newsletter subscription form.
type NewsletterInput struct {
	Email string `json:"email"`
}

func (r NewsletterInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("invalid email format")),
	)
}

// Receipt is returned to the visitor after a successful submission. The
// reference is the only handle they get to follow up by phone or mail.
type Receipt struct {
	Reference string `json:"reference"`
}
