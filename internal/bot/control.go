package bot

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/energyops/assetbot/internal/events"
	"github.com/energyops/assetbot/internal/logging"
	"github.com/energyops/assetbot/internal/remote"
	"github.com/energyops/assetbot/internal/views"
)

// showControls enters the control panel. A device without an external code
// cannot be addressed by the battery endpoints, so the panel is refused.
func (b *Bot) showControls(ctx context.Context, in *interaction, deviceID string) {
	if strings.TrimSpace(deviceID) == "" {
		in.show(ctx, views.NotControllable())
		return
	}
	in.show(ctx, views.ControlPanel(deviceID))
}

// setMode posts the new mode and confirms or reports the outcome. The
// interim screen goes out before the request.
func (b *Bot) setMode(ctx context.Context, in *interaction, deviceID string, mode remote.OperationMode) {
	if strings.TrimSpace(deviceID) == "" {
		in.show(ctx, views.NotControllable())
		return
	}

	in.show(ctx, views.SettingMode(mode))

	if err := b.api.SetOperationMode(ctx, deviceID, mode); err != nil {
		in.fail(remote.OperationModePath(deviceID), err)
		in.show(ctx, views.ModeFailed(deviceID))
		return
	}

	logging.Info("Operation mode changed",
		zap.String("interaction_id", in.id),
		zap.String("device_id", deviceID),
		zap.String("mode", string(mode)),
	)
	in.show(ctx, views.ModeChanged(deviceID, mode))

	ev := events.ModeChanged{
		InteractionID: in.id,
		DeviceID:      deviceID,
		Mode:          mode,
		ChatID:        in.chatID,
		At:            b.now().UTC(),
	}
	if err := b.events.PublishModeChanged(ctx, ev); err != nil {
		logging.Warn("Failed to publish mode change event",
			zap.String("interaction_id", in.id),
			zap.Error(err),
		)
	}
}

// batteryStatus reads the live status. Refresh re-enters this state.
func (b *Bot) batteryStatus(ctx context.Context, in *interaction, deviceID string) {
	if strings.TrimSpace(deviceID) == "" {
		in.show(ctx, views.NotControllable())
		return
	}

	in.show(ctx, views.Screen{Text: views.TextBatteryLoading})

	status, err := b.api.GetBattery(ctx, deviceID)
	if err != nil {
		in.fail(remote.BatteryPath(deviceID), err)
		in.show(ctx, views.BatteryFailed(deviceID))
		return
	}

	in.show(ctx, views.BatteryStatus(deviceID, status))
}
