package settings

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Coordonnees holds the agency contact block shown in the site footer.
type Coordonnees struct {
	Adresse   string `json:"adresse"`
	Telephone string `json:"telephone,omitempty"`
	Email     string `json:"email"`
	Horaires  string `json:"horaires,omitempty"`
}

func (c Coordonnees) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Adresse, validation.Required.Error("adresse is required")),
		validation.Field(&c.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("invalid email format")),
	)
}

// ReseauxSociaux lists the official social accounts. Every field is
// optional but must be a URL when present.
type ReseauxSociaux struct {
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	YouTube  string `json:"youtube,omitempty"`
}

func (r ReseauxSociaux) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Twitter, validation.When(r.Twitter != "", is.URL.Error("twitter must be a URL"))),
		validation.Field(&r.LinkedIn, validation.When(r.LinkedIn != "", is.URL.Error("linkedin must be a URL"))),
		validation.Field(&r.Facebook, validation.When(r.Facebook != "", is.URL.Error("facebook must be a URL"))),
		validation.Field(&r.YouTube, validation.When(r.YouTube != "", is.URL.Error("youtube must be a URL"))),
	)
}

// MotDirecteur is the director's welcome message on the home page.
type MotDirecteur struct {
	Titre    string `json:"titre,omitempty"`
	Contenu  string `json:"contenu"`
	PhotoURL string `json:"photo_url,omitempty"`
}

func (m MotDirecteur) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Contenu, validation.Required.Error("contenu is required")),
	)
}

// Antenne is one regional office.
type Antenne struct {
	Nom       string `json:"nom"`
	Adresse   string `json:"adresse"`
	Telephone string `json:"telephone,omitempty"`
}

func (a Antenne) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Nom, validation.Required.Error("nom is required")),
		validation.Field(&a.Adresse, validation.Required.Error("adresse is required")),
	)
}

// Antennes wraps the list of regional offices.
type Antennes struct {
	Antennes []Antenne `json:"antennes"`
}

func (a Antennes) Validate() error {
	for i, antenne := range a.Antennes {
		if err := antenne.Validate(); err != nil {
			return fmt.Errorf("antennes[%d]: %w", i, err)
		}
	}
	return nil
}

// decodeStrict unmarshals raw JSON into dst rejecting unknown fields, so
// typos in setting payloads surface instead of being silently dropped.
func decodeStrict(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

// validatePayload checks the raw JSON against the schema for the key.
func validatePayload(key enums.SettingKey, raw json.RawMessage) error {
	switch key {
	case enums.SettingKeyCoordonnees:
		var v Coordonnees
		if err := decodeStrict(raw, &v); err != nil {
			return err
		}
		return v.Validate()
	case enums.SettingKeyReseauxSociaux:
		var v ReseauxSociaux
		if err := decodeStrict(raw, &v); err != nil {
			return err
		}
		return v.Validate()
	case enums.SettingKeyMotDirecteur:
		var v MotDirecteur
		if err := decodeStrict(raw, &v); err != nil {
			return err
		}
		return v.Validate()
	case enums.SettingKeyAntennes:
		var v Antennes
		if err := decodeStrict(raw, &v); err != nil {
			return err
		}
		return v.Validate()
	default:
		return fmt.Errorf("unknown setting key %q", key)
	}
}
