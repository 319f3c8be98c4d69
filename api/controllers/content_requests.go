package controllers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/agence-judiciaire/aje-backend/internal/content"
	"github.com/agence-judiciaire/aje-backend/pkg/db/models"
	dbtypes "github.com/agence-judiciaire/aje-backend/pkg/db/types"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
)

type contentResource interface {
	MountAdmin(chi.Router)
	MountPublic(chi.Router)
}

// ContentControllers exposes the managed resources under their URL
// segments, one handler set per table.
type ContentControllers struct {
	resources map[string]contentResource
}

func NewContentControllers(svcs *content.Services, logg *logger.Logger) *ContentControllers {
	return &ContentControllers{resources: map[string]contentResource{
		"actualites":           newContentHandlers[models.Actualite, *models.Actualite, actualiteRequest](svcs.Actualites, logg),
		"documents":            newContentHandlers[models.Document, *models.Document, documentRequest](svcs.Documents, logg),
		"textes-juridiques":    newContentHandlers[models.TexteJuridique, *models.TexteJuridique, texteJuridiqueRequest](svcs.TextesJuridiques, logg),
		"offres-emploi":        newContentHandlers[models.OffreEmploi, *models.OffreEmploi, offreEmploiRequest](svcs.OffresEmploi, logg),
		"jurisprudences":       newContentHandlers[models.Jurisprudence, *models.Jurisprudence, jurisprudenceRequest](svcs.Jurisprudences, logg),
		"communiques":          newContentHandlers[models.Communique, *models.Communique, communiqueRequest](svcs.Communiques, logg),
		"kit-media":            newContentHandlers[models.KitMediaElement, *models.KitMediaElement, kitMediaRequest](svcs.KitMedia, logg),
		"procedures":           newContentHandlers[models.Procedure, *models.Procedure, procedureRequest](svcs.Procedures, logg),
		"services-juridiques":  newContentHandlers[models.ServiceJuridique, *models.ServiceJuridique, serviceJuridiqueRequest](svcs.ServicesJuridiques, logg),
		"domaines-contentieux": newContentHandlers[models.DomaineContentieux, *models.DomaineContentieux, domaineContentieuxRequest](svcs.DomainesContentieux, logg),
		"faq":                  newContentHandlers[models.FAQ, *models.FAQ, faqRequest](svcs.FAQ, logg),
	}}
}

func (c *ContentControllers) MountAdmin(r chi.Router) {
	for segment, resource := range c.resources {
		r.Route("/"+segment, resource.MountAdmin)
	}
}

func (c *ContentControllers) MountPublic(r chi.Router) {
	for segment, resource := range c.resources {
		r.Route("/"+segment, resource.MountPublic)
	}
}

type actualiteRequest struct {
	Titre         *string                 `json:"titre"`
	Contenu       *string                 `json:"contenu"`
	Categorie     *string                 `json:"categorie"`
	ImageURL      *string                 `json:"image_url"`
	Photos        *dbtypes.AttachmentList `json:"photos"`
	Videos        *dbtypes.AttachmentList `json:"videos"`
	PiecesJointes *dbtypes.AttachmentList `json:"pieces_jointes"`
	Publie        *bool                   `json:"publie"`
}

func (p actualiteRequest) validate(create bool) error {
	if !create {
		return nil
	}
	return missingFields(map[string]bool{
		"titre":   blank(p.Titre),
		"contenu": blank(p.Contenu),
	})
}

func (p actualiteRequest) apply(row *models.Actualite) {
	setString(&row.Titre, p.Titre)
	setString(&row.Contenu, p.Contenu)
	setString(&row.Categorie, p.Categorie)
	setString(&row.ImageURL, p.ImageURL)
	if p.Photos != nil {
		row.Photos = *p.Photos
	}
	if p.Videos != nil {
		row.Videos = *p.Videos
	}
	if p.PiecesJointes != nil {
		row.PiecesJointes = *p.PiecesJointes
	}
	if p.Publie != nil {
		row.Publie = *p.Publie
	}
}

type documentRequest struct {
	Titre       *string `json:"titre"`
	Description *string `json:"description"`
	Categorie   *string `json:"categorie"`
	FichierURL  *string `json:"fichier_url"`
	Publie      *bool   `json:"publie"`
}

func (p documentRequest) validate(create bool) error {
	if !create {
		return nil
	}
	return missingFields(map[string]bool{
		"titre":       blank(p.Titre),
		"fichier_url": blank(p.FichierURL),
	})
}

func (p documentRequest) apply(row *models.Document) {
	setString(&row.Titre, p.Titre)
	setString(&row.Description, p.Description)
	setString(&row.Categorie, p.Categorie)
	setString(&row.FichierURL, p.FichierURL)
	if p.Publie != nil {
		row.Publie = *p.Publie
	}
}

type texteJuridiqueRequest struct {
	Titre      *string    `json:"titre"`
	TypeTexte  *string    `json:"type_texte"`
	Reference  *string    `json:"reference"`
	DateTexte  *time.Time `json:"date_texte"`
	FichierURL *string    `json:"fichier_url"`
	Publie     *bool      `json:"publie"`
}

func (p texteJuridiqueRequest) validate(create bool) error {
	if p.TypeTexte != nil {
		if _, err := enums.ParseTypeTexte(*p.TypeTexte); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type_texte")
		}
	}
	if !create {
		return nil
	}
	return missingFields(map[string]bool{
		"titre":      blank(p.Titre),
		"type_texte": blank(p.TypeTexte),
	})
}

func (p texteJuridiqueRequest) apply(row *models.TexteJuridique) {
	setString(&row.Titre, p.Titre)
	setString(&row.Reference, p.Reference)
	setString(&row.FichierURL, p.FichierURL)
	if p.TypeTexte != nil {
		if parsed, err := enums.ParseTypeTexte(*p.TypeTexte); err == nil {
			row.TypeTexte = parsed
		}
	}
	if p.DateTexte != nil {
		row.DateTexte = p.DateTexte
	}
	if p.Publie != nil {
		row.Publie = *p.Publie
	}
}

type offreEmploiRequest struct {
	Titre       *string              `json:"titre"`
	Description *string              `json:"description"`
	TypeContrat *string              `json:"type_contrat"`
	Lieu        *string              `json:"lieu"`
	DateLimite  *time.Time           `json:"date_limite"`
	Criteres    *dbtypes.StringArray `json:"criteres"`
	Publie      *bool                `json:"publie"`
}

func (p offreEmploiRequest) validate(create bool) error {
	if p.TypeContrat != nil {
		if _, err := enums.ParseTypeContrat(*p.TypeContrat); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type_contrat")
		}
	}
	if !create {
		return nil
	}
	return missingFields(map[string]bool{
		"titre":        blank(p.Titre),
		"description":  blank(p.Description),
		"type_contrat": blank(p.TypeContrat),
	})
}

func (p offreEmploiRequest) apply(row *models.OffreEmploi) {
	setString(&row.Titre, p.Titre)
	setString(&row.Description, p.Description)
	setString(&row.Lieu, p.Lieu)
	if p.TypeContrat != nil {
		if parsed, err := enums.ParseTypeContrat(*p.TypeContrat); err == nil {
			row.TypeContrat = parsed
		}
	}
	if p.DateLimite != nil {
		row.DateLimite = p.DateLimite
	}
	if p.Criteres != nil {
		row.Criteres = *p.Criteres
	}
	if p.Publie != nil {
		row.Publie = *p.Publie
	}
}

type jurisprudenceRequest struct {
	Titre          *string    `json:"titre"`
	Juridiction    *string    `json:"juridiction"`
	NumeroDecision *string    `json:"numero_decision"`
	DateDecision   *time.Time `json:"date_decision"`
	Resume         *string    `json:"resume"`
	FichierURL     *string    `json:"fichier_url"`
	Publie         *bool      `json:"publie"`
}

func (p jurisprudenceRequest) validate(create bool) error {
	if !create {
		return nil
	}
	return missingFields(map[string]bool{
		"titre":       blank(p.Titre),
		"juridiction": blank(p.Juridiction),
	})
}

func (p jurisprudenceRequest) apply(row *models.Jurisprudence) {
	setString(&row.Titre, p.Titre)
	setString(&row.Juridiction, p.Juridiction)
	setString(&row.NumeroDecision, p.NumeroDecision)
	setString(&row.Resume, p.Resume)
	setString(&row.FichierURL, p.FichierURL)
	if p.DateDecision != nil {
		row.DateDecision = p.DateDecision
	}
	if p.Publie != nil {
		row.Publie = *p.Publie
	}
}

type communiqueRequest struct {
	Titre           *string    `json:"titre"`
	Contenu         *string    `json:"contenu"`
	DatePublication *time.Time `json:"date_publication"`
	Publie          *bool      `json:"publie"`
}

func (p communiqueRequest) validate(create bool) error {
	if !create {
		return nil
	}
	return missingFields(map[string]bool{
		"titre":   blank(p.Titre),
		"contenu": blank(p.Contenu),
	})
}

func (p communiqueRequest) apply(row *models.Communique) {
	setString(&row.Titre, p.Titre)
	setString(&row.Contenu, p.Contenu)
	if p.DatePublication != nil {
		row.DatePublication = p.DatePublication
	}
	if p.Publie != nil {
		row.Publie = *p.Publie
	}
}

type kitMediaRequest struct {
	Titre       *string `json:"titre"`
	TypeElement *string `json:"type_element"`
	FichierURL  *string `json:"fichier_url"`
	Publie      *bool   `json:"publie"`
}

func (p kitMediaRequest) validate(create bool) error {
	if !create {
		return nil
	}
	return missingFields(map[string]bool{
		"titre":       blank(p.Titre),
		"fichier_url": blank(p.FichierURL),
	})
}

func (p kitMediaRequest) apply(row *models.KitMediaElement) {
	setString(&row.Titre, p.Titre)
	setString(&row.TypeElement, p.TypeElement)
	setString(&row.FichierURL, p.FichierURL)
	if p.Publie != nil {
		row.Publie = *p.Publie
	}
}

type procedureRequest struct {
	Titre       *string              `json:"titre"`
	Description *string              `json:"description"`
	Etapes      *dbtypes.StringArray `json:"etapes"`
	Publie      *bool                `json:"publie"`
}

func (p procedureRequest) validate(create bool) error {
	if !create {
		return nil
	}
	return missingFields(map[string]bool{
		"titre": blank(p.Titre),
	})
}

func (p procedureRequest) apply(row *models.Procedure) {
	setString(&row.Titre, p.Titre)
	setString(&row.Description, p.Description)
	if p.Etapes != nil {
		row.Etapes = *p.Etapes
	}
	if p.Publie != nil {
		row.Publie = *p.Publie
	}
}

type serviceJuridiqueRequest struct {
	Nom         *string `json:"nom"`
	Description *string `json:"description"`
	Icone       *string `json:"icone"`
	Publie      *bool   `json:"publie"`
}

func (p serviceJuridiqueRequest) validate(create bool) error {
	if !create {
		return nil
	}
	return missingFields(map[string]bool{
		"nom": blank(p.Nom),
	})
}

func (p serviceJuridiqueRequest) apply(row *models.ServiceJuridique) {
	setString(&row.Nom, p.Nom)
	setString(&row.Description, p.Description)
	setString(&row.Icone, p.Icone)
	if p.Publie != nil {
		row.Publie = *p.Publie
	}
}

type domaineContentieuxRequest struct {
	Nom             *string          `json:"nom"`
	Description     *string          `json:"description"`
	MontantRecupere *decimal.Decimal `json:"montant_recupere"`
	NombreDossiers  *int             `json:"nombre_dossiers"`
	Publie          *bool            `json:"publie"`
}

func (p domaineContentieuxRequest) validate(create bool) error {
	if p.MontantRecupere != nil && p.MontantRecupere.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "montant_recupere cannot be negative")
	}
	if p.NombreDossiers != nil && *p.NombreDossiers < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "nombre_dossiers cannot be negative")
	}
	if !create {
		return nil
	}
	return missingFields(map[string]bool{
		"nom": blank(p.Nom),
	})
}

func (p domaineContentieuxRequest) apply(row *models.DomaineContentieux) {
	setString(&row.Nom, p.Nom)
	setString(&row.Description, p.Description)
	if p.MontantRecupere != nil {
		row.MontantRecupere = *p.MontantRecupere
	}
	setInt(&row.NombreDossiers, p.NombreDossiers)
	if p.Publie != nil {
		row.Publie = *p.Publie
	}
}

type faqRequest struct {
	Question  *string `json:"question"`
	Reponse   *string `json:"reponse"`
	Categorie *string `json:"categorie"`
	Publie    *bool   `json:"publie"`
}

func (p faqRequest) validate(create bool) error {
	if !create {
		return nil
	}
	return missingFields(map[string]bool{
		"question": blank(p.Question),
		"reponse":  blank(p.Reponse),
	})
}

func (p faqRequest) apply(row *models.FAQ) {
	setString(&row.Question, p.Question)
	setString(&row.Reponse, p.Reponse)
	setString(&row.Categorie, p.Categorie)
	if p.Publie != nil {
		row.Publie = *p.Publie
	}
}
