package command

import (
	"context"
	"strings"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
	"github.com/learnpath/go-progressions/pkg/types"
)

const secureLinkRouteProgression = "progressions.detail"

// NotifierConfig wires the queue collaborator plus the pieces that shape the
// outgoing message: per-customer settings, a feature gate, and an optional
// securelink manager for signed resource links.
type NotifierConfig struct {
	Queue       types.NotificationQueue
	Settings    types.NotificationSettingsResolver
	Gate        featuregate.FeatureGate
	SecureLinks types.SecureLinkManager
	Clock       types.Clock
	Logger      types.Logger
}

// Notifier builds and dispatches queue notifications after successful
// writes. Dispatch is best-effort relative to the response path: failures
// are logged and never surface to the caller.
type Notifier struct {
	queue    types.NotificationQueue
	settings types.NotificationSettingsResolver
	gate     featuregate.FeatureGate
	links    types.SecureLinkManager
	clock    types.Clock
	logger   types.Logger
}

// NewNotifier constructs the notification dispatcher.
func NewNotifier(cfg NotifierConfig) *Notifier {
	return &Notifier{
		queue:    cfg.Queue,
		settings: cfg.Settings,
		gate:     cfg.Gate,
		links:    cfg.SecureLinks,
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
	}
}

type notifyEvent struct {
	customerID    uuid.UUID
	progressionID uuid.UUID
	touchpointID  string
	correlationID string
	apiURL        string
	resource      map[string]any
}

// Dispatch sends the notification when the feature gate and customer
// settings allow it. The returned error is informational; callers treat the
// send as fire-and-forget.
func (n *Notifier) Dispatch(ctx context.Context, event notifyEvent) error {
	if n == nil || n.queue == nil {
		return nil
	}
	enabled, err := featureEnabled(ctx, n.gate, featureProgressionNotify, event.customerID)
	if err != nil {
		n.logger.Error("go-progressions: notification feature gate check failed", err,
			"customer_id", event.customerID.String())
		return err
	}
	if !enabled {
		n.logger.Debug("go-progressions: notifications gated off",
			"customer_id", event.customerID.String())
		return nil
	}

	channel := ""
	if n.settings != nil {
		settings, err := n.settings.NotificationSettings(ctx, event.customerID)
		if err != nil {
			n.logger.Error("go-progressions: notification settings lookup failed", err,
				"customer_id", event.customerID.String())
		} else if !settings.Enabled {
			n.logger.Debug("go-progressions: notifications disabled for customer",
				"customer_id", event.customerID.String())
			return nil
		} else {
			channel = settings.Channel
		}
	}

	message := types.NotificationMessage{
		CustomerID:    event.customerID,
		ProgressionID: event.progressionID,
		TouchpointID:  event.touchpointID,
		CorrelationID: event.correlationID,
		Channel:       channel,
		ResourceURL:   resourceURL(event.apiURL, event.customerID, event.progressionID),
		OccurredAt:    now(n.clock),
		Resource:      event.resource,
	}
	if n.links != nil {
		link, err := n.links.Generate(secureLinkRouteProgression, types.SecureLinkPayload{
			"customer_id":    event.customerID.String(),
			"progression_id": event.progressionID.String(),
		})
		if err != nil {
			n.logger.Error("go-progressions: secure link generation failed", err,
				"customer_id", event.customerID.String())
		} else {
			message.SignedLink = link
		}
	}

	if err := n.queue.Send(ctx, message); err != nil {
		n.logger.Error("go-progressions: notification send failed", err,
			"customer_id", event.customerID.String(),
			"progression_id", event.progressionID.String())
		return err
	}
	return nil
}

func resourceURL(apiURL string, customerID, progressionID uuid.UUID) string {
	base := strings.TrimRight(strings.TrimSpace(apiURL), "/")
	return base + "/customers/" + customerID.String() + "/learningprogressions/" + progressionID.String()
}
