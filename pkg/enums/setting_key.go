package enums

import "fmt"

// SettingKey names one of the typed site settings documents.
type SettingKey string

const (
	SettingKeyCoordonnees    SettingKey = "coordonnees"
	SettingKeyReseauxSociaux SettingKey = "reseaux_sociaux"
	SettingKeyMotDirecteur   SettingKey = "mot_directeur"
	SettingKeyAntennes       SettingKey = "antennes"
)

var validSettingKeys = []SettingKey{
	SettingKeyCoordonnees,
	SettingKeyReseauxSociaux,
	SettingKeyMotDirecteur,
	SettingKeyAntennes,
}

// String implements fmt.Stringer.
func (s SettingKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SettingKey.
func (s SettingKey) IsValid() bool {
	for _, candidate := range validSettingKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSettingKey converts raw input into a SettingKey.
func ParseSettingKey(value string) (SettingKey, error) {
	for _, candidate := range validSettingKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid setting key %q", value)
}
