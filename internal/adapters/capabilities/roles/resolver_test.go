package roles

import (
	"context"
	"testing"

	"medistock/internal/ports/auth"
	"medistock/internal/ports/capabilities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver(t *testing.T) {
	r := NewResolver()
	ctx := context.Background()

	cases := []struct {
		role    auth.Role
		feature capabilities.Feature
		want    bool
	}{
		{auth.RoleAdmin, capabilities.FeatureLedgerWrite, true},
		{auth.RoleAdmin, capabilities.FeatureCatalogWrite, true},
		{auth.RoleGuest, capabilities.FeatureLedgerRead, true},
		{auth.RoleGuest, capabilities.FeatureSuggestionsUse, true},
		{auth.RoleGuest, capabilities.FeatureLedgerWrite, false},
		{auth.RoleGuest, capabilities.FeatureCatalogWrite, false},
		{auth.Role("root"), capabilities.FeatureCatalogRead, false},
	}
	for _, tc := range cases {
		got, err := r.HasFeature(ctx, capabilities.CapabilityCheck{Role: tc.role, Feature: tc.feature})
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s/%s", tc.role, tc.feature)
	}

	assert.Equal(t, []capabilities.Feature{
		capabilities.FeatureCatalogRead,
		capabilities.FeatureLedgerRead,
		capabilities.FeatureSuggestionsUse,
	}, r.Features(auth.RoleGuest))
}
