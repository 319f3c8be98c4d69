package content

import (
	"github.com/agence-judiciaire/aje-backend/pkg/db"
	"github.com/agence-judiciaire/aje-backend/pkg/db/models"
)

// Per-resource definitions. Documents and downloadable assets go live on
// creation, editorial content starts as a draft.
var (
	ActualitesDef = Definition{
		Resource:       "actualites",
		SearchColumns:  []string{"titre", "contenu"},
		CategoryColumn: "categorie",
	}
	DocumentsDef = Definition{
		Resource:         "documents",
		SearchColumns:    []string{"titre", "description"},
		CategoryColumn:   "categorie",
		DefaultPublished: true,
	}
	TextesJuridiquesDef = Definition{
		Resource:         "textes_juridiques",
		SearchColumns:    []string{"titre", "reference"},
		CategoryColumn:   "type_texte",
		DefaultPublished: true,
	}
	OffresEmploiDef = Definition{
		Resource:       "offres_emploi",
		SearchColumns:  []string{"titre", "description", "lieu"},
		CategoryColumn: "type_contrat",
	}
	JurisprudencesDef = Definition{
		Resource:         "jurisprudences",
		SearchColumns:    []string{"titre", "juridiction", "numero_decision", "resume"},
		DefaultPublished: true,
	}
	CommuniquesDef = Definition{
		Resource:      "communiques",
		SearchColumns: []string{"titre", "contenu"},
	}
	KitMediaDef = Definition{
		Resource:         "kit_media",
		SearchColumns:    []string{"titre"},
		CategoryColumn:   "type_element",
		DefaultPublished: true,
	}
	ProceduresDef = Definition{
		Resource:         "procedures",
		SearchColumns:    []string{"titre", "description"},
		DefaultPublished: true,
	}
	ServicesJuridiquesDef = Definition{
		Resource:         "services_juridiques",
		SearchColumns:    []string{"nom", "description"},
		DefaultPublished: true,
	}
	DomainesContentieuxDef = Definition{
		Resource:         "domaines_contentieux",
		SearchColumns:    []string{"nom", "description"},
		DefaultPublished: true,
	}
	FAQDef = Definition{
		Resource:         "faqs",
		SearchColumns:    []string{"question", "reponse"},
		CategoryColumn:   "categorie",
		DefaultPublished: true,
	}
)

// Services bundles one managed service per content resource.
type Services struct {
	Actualites          *Service[models.Actualite, *models.Actualite]
	Documents           *Service[models.Document, *models.Document]
	TextesJuridiques    *Service[models.TexteJuridique, *models.TexteJuridique]
	OffresEmploi        *Service[models.OffreEmploi, *models.OffreEmploi]
	Jurisprudences      *Service[models.Jurisprudence, *models.Jurisprudence]
	Communiques         *Service[models.Communique, *models.Communique]
	KitMedia            *Service[models.KitMediaElement, *models.KitMediaElement]
	Procedures          *Service[models.Procedure, *models.Procedure]
	ServicesJuridiques  *Service[models.ServiceJuridique, *models.ServiceJuridique]
	DomainesContentieux *Service[models.DomaineContentieux, *models.DomaineContentieux]
	FAQ                 *Service[models.FAQ, *models.FAQ]
}

// NewServices wires every content resource against the shared DB client
// and audit recorder.
func NewServices(dbClient *db.Client, audit Recorder) (*Services, error) {
	conn := dbClient.DB()

	actualites, err := NewService(NewRepository[models.Actualite](conn, ActualitesDef), dbClient, audit)
	if err != nil {
		return nil, err
	}
	documents, err := NewService(NewRepository[models.Document](conn, DocumentsDef), dbClient, audit)
	if err != nil {
		return nil, err
	}
	textes, err := NewService(NewRepository[models.TexteJuridique](conn, TextesJuridiquesDef), dbClient, audit)
	if err != nil {
		return nil, err
	}
	offres, err := NewService(NewRepository[models.OffreEmploi](conn, OffresEmploiDef), dbClient, audit)
	if err != nil {
		return nil, err
	}
	jurisprudences, err := NewService(NewRepository[models.Jurisprudence](conn, JurisprudencesDef), dbClient, audit)
	if err != nil {
		return nil, err
	}
	communiques, err := NewService(NewRepository[models.Communique](conn, CommuniquesDef), dbClient, audit)
	if err != nil {
		return nil, err
	}
	kitMedia, err := NewService(NewRepository[models.KitMediaElement](conn, KitMediaDef), dbClient, audit)
	if err != nil {
		return nil, err
	}
	procedures, err := NewService(NewRepository[models.Procedure](conn, ProceduresDef), dbClient, audit)
	if err != nil {
		return nil, err
	}
	servicesJuridiques, err := NewService(NewRepository[models.ServiceJuridique](conn, ServicesJuridiquesDef), dbClient, audit)
	if err != nil {
		return nil, err
	}
	domaines, err := NewService(NewRepository[models.DomaineContentieux](conn, DomainesContentieuxDef), dbClient, audit)
	if err != nil {
		return nil, err
	}
	faq, err := NewService(NewRepository[models.FAQ](conn, FAQDef), dbClient, audit)
	if err != nil {
		return nil, err
	}

	return &Services{
		Actualites:          actualites,
		Documents:           documents,
		TextesJuridiques:    textes,
		OffresEmploi:        offres,
		Jurisprudences:      jurisprudences,
		Communiques:         communiques,
		KitMedia:            kitMedia,
		Procedures:          procedures,
		ServicesJuridiques:  servicesJuridiques,
		DomainesContentieux: domaines,
		FAQ:                 faq,
	}, nil
}
