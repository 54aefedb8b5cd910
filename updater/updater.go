// Package updater runs the Emby refresh workflow on behalf of a host process.
//
// Refresh failures caused by the server or the network are logged and
// swallowed so they never interrupt the host. Setup defects such as missing
// credentials are returned.
package updater

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/s0up4200/embyupdate/config"
	"github.com/s0up4200/embyupdate/emby"
)

// Updater triggers Emby library refreshes with a fixed configuration
type Updater struct {
	cfg    config.EmbyConfig
	logger zerolog.Logger
	opts   []emby.Option
}

// New creates an Updater. opts are passed to every emby client it creates.
func New(cfg config.EmbyConfig, logger zerolog.Logger, opts ...emby.Option) *Updater {
	return &Updater{
		cfg:    cfg,
		logger: logger,
		opts:   opts,
	}
}

// Run performs one refresh. It returns nil when the refresh was accepted or
// failed for a runtime reason, and an error for configuration problems.
func (u *Updater) Run(ctx context.Context) error {
	logger := u.logger.With().Str("run_id", uuid.NewString()).Logger()
	logger.Info().Msg("Updating Emby library...")

	opts := append([]emby.Option{emby.WithTimeout(u.cfg.Timeout)}, u.opts...)
	err := emby.Update(ctx, u.cfg.Host, u.cfg.Port, u.cfg.Username, u.cfg.Password, logger, opts...)

	switch {
	case err == nil:
		logger.Info().Msg("... started.")
		return nil
	case emby.IsWorkflowError(err):
		logger.Warn().Err(err).Msg("Update failed.")
		return nil
	default:
		return fmt.Errorf("emby update: %w", err)
	}
}
