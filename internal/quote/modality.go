package quote

import (
	"strings"

	"github.com/niltaduartte/humano-saude-sub001/internal/catalog"
)

// ParsePersonType is lenient: only "PJ" (any case) is an organization.
func ParsePersonType(raw string) PersonType {
	if strings.EqualFold(strings.TrimSpace(raw), string(PersonOrganization)) {
		return PersonOrganization
	}
	return PersonIndividual
}

// ClassifyModality picks the catalog partition: organizations and
// households of two or more lives are group-rated.
func ClassifyModality(pt PersonType, lives int) catalog.Modality {
	if pt == PersonOrganization || lives >= 2 {
		return catalog.ModalityPME
	}
	return catalog.ModalityPF
}
