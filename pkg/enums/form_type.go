package enums

import "fmt"

// FormType identifies a public intake form.
type FormType string

const (
	FormTypeContact       FormType = "contact"
	FormTypeAvisJuridique FormType = "avis_juridique"
	FormTypeSignalement   FormType = "signalement"
	FormTypePresse        FormType = "accreditation_presse"
	FormTypeNewsletter    FormType = "newsletter"
)

var validFormTypes = []FormType{
	FormTypeContact,
	FormTypeAvisJuridique,
	FormTypeSignalement,
	FormTypePresse,
	FormTypeNewsletter,
}

var formReferenceCodes = map[FormType]string{
	FormTypeContact:       "CT",
	FormTypeAvisJuridique: "AV",
	FormTypeSignalement:   "SG",
	FormTypePresse:        "AP",
	FormTypeNewsletter:    "NL",
}

// String implements fmt.Stringer.
func (f FormType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FormType.
func (f FormType) IsValid() bool {
	for _, candidate := range validFormTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ReferenceCode returns the short prefix used in visitor reference numbers.
func (f FormType) ReferenceCode() string {
	if code, ok := formReferenceCodes[f]; ok {
		return code
	}
	return "XX"
}

// ParseFormType converts raw input into a FormType.
func ParseFormType(value string) (FormType, error) {
	for _, candidate := range validFormTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid form type %q", value)
}
