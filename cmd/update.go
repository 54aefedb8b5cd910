package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/embyupdate/updater"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Trigger an Emby library refresh now",
	Long: `Log in to Emby and ask it to rescan the whole library.

Server and network failures are logged as a warning and do not change the
exit status. Missing credentials or an invalid host are reported as errors.`,
	PreRunE: initializeApp,
	RunE:    runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return updater.New(cfg.Emby, logger).Run(cmd.Context())
}
