package enums

import "fmt"

// TypeContrat classifies a job offer.
type TypeContrat string

const (
	TypeContratCDI         TypeContrat = "cdi"
	TypeContratCDD         TypeContrat = "cdd"
	TypeContratStage       TypeContrat = "stage"
	TypeContratAlternance  TypeContrat = "alternance"
	TypeContratDetachement TypeContrat = "detachement"
)

var validTypesContrat = []TypeContrat{
	TypeContratCDI,
	TypeContratCDD,
	TypeContratStage,
	TypeContratAlternance,
	TypeContratDetachement,
}

// String implements fmt.Stringer.
func (t TypeContrat) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TypeContrat.
func (t TypeContrat) IsValid() bool {
	for _, candidate := range validTypesContrat {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTypeContrat converts raw input into a TypeContrat.
func ParseTypeContrat(value string) (TypeContrat, error) {
	for _, candidate := range validTypesContrat {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid type de contrat %q", value)
}
