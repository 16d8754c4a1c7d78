package command

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
)

const featureProgressionNotify = "progressions.notify"

func featureEnabled(ctx context.Context, gate featuregate.FeatureGate, key string, customerID uuid.UUID) (bool, error) {
	if gate == nil {
		return true, nil
	}
	if customerID == uuid.Nil {
		return gate.Enabled(ctx, key)
	}
	return gate.Enabled(ctx, key, featuregate.WithScopeChain(featuregate.ScopeChain{
		{Kind: featuregate.ScopeTenant, ID: customerID.String(), TenantID: customerID.String()},
		{Kind: featuregate.ScopeSystem},
	}))
}
