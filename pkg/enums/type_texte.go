package enums

import "fmt"

// TypeTexte classifies a legal text.
type TypeTexte string

const (
	TypeTexteLoi        TypeTexte = "loi"
	TypeTexteDecret     TypeTexte = "decret"
	TypeTexteArrete     TypeTexte = "arrete"
	TypeTexteOrdonnance TypeTexte = "ordonnance"
	TypeTexteCirculaire TypeTexte = "circulaire"
)

var validTypesTexte = []TypeTexte{
	TypeTexteLoi,
	TypeTexteDecret,
	TypeTexteArrete,
	TypeTexteOrdonnance,
	TypeTexteCirculaire,
}

// String implements fmt.Stringer.
func (t TypeTexte) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TypeTexte.
func (t TypeTexte) IsValid() bool {
	for _, candidate := range validTypesTexte {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTypeTexte converts raw input into a TypeTexte.
func ParseTypeTexte(value string) (TypeTexte, error) {
	for _, candidate := range validTypesTexte {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid type de texte %q", value)
}
