package core

import (
	"context"

	"github.com/niltaduartte/humano-saude-sub001/internal/catalog"
)

// CurrentCatalogReader reads active plans of the normalized catalog,
// ordered by carrier name ascending.
type CurrentCatalogReader interface {
	CurrentPlans(ctx context.Context, modality catalog.Modality) ([]catalog.CurrentPlan, error)
}

// LegacyCatalogReader reads active plans of the legacy catalog for a
// contract type (PF, PME or Adesão).
type LegacyCatalogReader interface {
	LegacyPlans(ctx context.Context, contractType string) ([]catalog.LegacyPlan, error)
}

type CatalogReader interface {
	CurrentCatalogReader
	LegacyCatalogReader
}
