package enums

import "fmt"

// StatutDemande tracks the handling state of a visitor submission.
type StatutDemande string

const (
	StatutDemandeNouveau StatutDemande = "nouveau"
	StatutDemandeEnCours StatutDemande = "en_cours"
	StatutDemandeTraite  StatutDemande = "traite"
	StatutDemandeArchive StatutDemande = "archive"
)

var validStatutsDemande = []StatutDemande{
	StatutDemandeNouveau,
	StatutDemandeEnCours,
	StatutDemandeTraite,
	StatutDemandeArchive,
}

// String implements fmt.Stringer.
func (s StatutDemande) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StatutDemande.
func (s StatutDemande) IsValid() bool {
	for _, candidate := range validStatutsDemande {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the submission left the active queue.
func (s StatutDemande) IsTerminal() bool {
	return s == StatutDemandeTraite || s == StatutDemandeArchive
}

// ParseStatutDemande converts raw input into a StatutDemande.
func ParseStatutDemande(value string) (StatutDemande, error) {
	for _, candidate := range validStatutsDemande {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid statut %q", value)
}
