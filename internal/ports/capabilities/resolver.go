package capabilities

import (
	"context"

	"medistock/internal/ports/auth"
)

type Feature string

const (
	FeatureCatalogRead    Feature = "catalog:read"
	FeatureCatalogWrite   Feature = "catalog:write"
	FeatureLedgerRead     Feature = "ledger:read"
	FeatureLedgerWrite    Feature = "ledger:write"
	FeatureSuggestionsUse Feature = "suggestions:use"
)

type CapabilityCheck struct {
	UserID  string
	Role    auth.Role
	Feature Feature
}

type CapabilitiesResolver interface {
	HasFeature(ctx context.Context, in CapabilityCheck) (bool, error)
}
