package settings

import (
	"context"
	"fmt"
	"strings"

	opts "github.com/goliatone/go-options"
	"github.com/google/uuid"
	"github.com/learnpath/go-progressions/pkg/types"
)

// Keys understood by the notification settings snapshot.
const (
	KeyNotifications = "notifications"

	defaultNotificationChannel = "learning-progressions"
)

// SettingsLister is the read contract the resolver needs from storage.
type SettingsLister interface {
	ListSettings(ctx context.Context, customerID uuid.UUID) ([]Setting, error)
}

// ResolverConfig wires dependencies for the settings resolver.
type ResolverConfig struct {
	Repository SettingsLister
	Defaults   map[string]any
}

// Resolver merges customer settings over system defaults via go-options.
type Resolver struct {
	repo     SettingsLister
	defaults map[string]any
}

// Snapshot is the effective settings view for one customer.
type Snapshot struct {
	Effective map[string]any
}

// NewResolver constructs a settings resolver.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.Repository == nil {
		return nil, fmt.Errorf("settings: repository required")
	}
	return &Resolver{
		repo:     cfg.Repository,
		defaults: cloneMap(cfg.Defaults),
	}, nil
}

var _ types.NotificationSettingsResolver = (*Resolver)(nil)

// Resolve layers the customer's stored entries on top of system defaults and
// returns the merged snapshot.
func (r *Resolver) Resolve(ctx context.Context, customerID uuid.UUID) (Snapshot, error) {
	if customerID == uuid.Nil {
		return Snapshot{}, types.ErrCustomerIDRequired
	}
	records, err := r.repo.ListSettings(ctx, customerID)
	if err != nil {
		return Snapshot{}, err
	}

	systemPayload := cloneMap(r.defaults)
	if systemPayload == nil {
		systemPayload = make(map[string]any)
	}
	customerPayload := make(map[string]any, len(records))
	for _, rec := range records {
		customerPayload[rec.Key] = cloneMap(rec.Value)
	}

	systemScope := opts.NewScope("system", opts.ScopePrioritySystem,
		opts.WithScopeLabel("System Defaults"))
	customerScope := opts.NewScope("customer", opts.ScopePriorityTenant,
		opts.WithScopeLabel("Customer"),
		opts.WithScopeMetadata(map[string]any{"customer_id": customerID.String()}))

	stack, err := opts.NewStack(
		opts.NewLayer(systemScope, systemPayload, opts.WithSnapshotID[map[string]any](systemScope.Name)),
		opts.NewLayer(customerScope, customerPayload, opts.WithSnapshotID[map[string]any](customerScope.Name)),
	)
	if err != nil {
		return Snapshot{}, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Effective: cloneMap(merged.Value)}, nil
}

// NotificationSettings implements types.NotificationSettingsResolver by
// reading the notifications entry off the merged snapshot. Missing keys fall
// back to enabled with the default channel.
func (r *Resolver) NotificationSettings(ctx context.Context, customerID uuid.UUID) (types.NotificationSettings, error) {
	snapshot, err := r.Resolve(ctx, customerID)
	if err != nil {
		return types.NotificationSettings{}, err
	}
	settings := types.NotificationSettings{
		Enabled: true,
		Channel: defaultNotificationChannel,
	}
	entry, ok := snapshot.Effective[KeyNotifications].(map[string]any)
	if !ok {
		return settings, nil
	}
	if enabled, ok := entry["enabled"].(bool); ok {
		settings.Enabled = enabled
	}
	if channel, ok := entry["channel"].(string); ok && strings.TrimSpace(channel) != "" {
		settings.Channel = channel
	}
	return settings, nil
}
