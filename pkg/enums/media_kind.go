package enums

import "fmt"

// MediaKind defines which part of the site an uploaded object belongs to.
type MediaKind string

const (
	MediaKindActualiteImage MediaKind = "actualite_image"
	MediaKindActualiteVideo MediaKind = "actualite_video"
	MediaKindActualitePDF   MediaKind = "actualite_pdf"
	MediaKindDocument       MediaKind = "document"
	MediaKindTexteJuridique MediaKind = "texte_juridique"
	MediaKindJurisprudence  MediaKind = "jurisprudence"
	MediaKindKitMedia       MediaKind = "kit_media"
	MediaKindCandidatureCV  MediaKind = "candidature_cv"
	MediaKindLettre         MediaKind = "candidature_lettre"
	MediaKindAutre          MediaKind = "autre"
)

var validMediaKinds = []MediaKind{
	MediaKindActualiteImage,
	MediaKindActualiteVideo,
	MediaKindActualitePDF,
	MediaKindDocument,
	MediaKindTexteJuridique,
	MediaKindJurisprudence,
	MediaKindKitMedia,
	MediaKindCandidatureCV,
	MediaKindLettre,
	MediaKindAutre,
}

// String returns the literal string for the kind.
func (m MediaKind) String() string {
	return string(m)
}

// IsValid reports whether the kind is known.
func (m MediaKind) IsValid() bool {
	for _, candidate := range validMediaKinds {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMediaKind converts raw input into a MediaKind.
func ParseMediaKind(value string) (MediaKind, error) {
	for _, candidate := range validMediaKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media kind %q", value)
}
