// Package roles resuelve features a partir del rol de los claims, sin llamadas externas.
package roles

import (
	"context"

	"medistock/internal/ports/auth"
	"medistock/internal/ports/capabilities"
)

// Resolver implementa capabilities.CapabilitiesResolver con una tabla fija.
type Resolver struct {
	byRole map[auth.Role]map[capabilities.Feature]bool
}

func NewResolver() *Resolver {
	return &Resolver{byRole: map[auth.Role]map[capabilities.Feature]bool{
		auth.RoleAdmin: {
			capabilities.FeatureCatalogRead:    true,
			capabilities.FeatureCatalogWrite:   true,
			capabilities.FeatureLedgerRead:     true,
			capabilities.FeatureLedgerWrite:    true,
			capabilities.FeatureSuggestionsUse: true,
		},
		auth.RoleGuest: {
			capabilities.FeatureCatalogRead:    true,
			capabilities.FeatureLedgerRead:     true,
			capabilities.FeatureSuggestionsUse: true,
		},
	}}
}

func (r *Resolver) HasFeature(_ context.Context, in capabilities.CapabilityCheck) (bool, error) {
	return r.byRole[in.Role][in.Feature], nil
}

// Features lista las features del rol (para /auth/login).
func (r *Resolver) Features(role auth.Role) []capabilities.Feature {
	out := make([]capabilities.Feature, 0, len(r.byRole[role]))
	for _, f := range []capabilities.Feature{
		capabilities.FeatureCatalogRead,
		capabilities.FeatureCatalogWrite,
		capabilities.FeatureLedgerRead,
		capabilities.FeatureLedgerWrite,
		capabilities.FeatureSuggestionsUse,
	} {
		if r.byRole[role][f] {
			out = append(out, f)
		}
	}
	return out
}
