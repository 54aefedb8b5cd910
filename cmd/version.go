package cmd

import (
	"context"
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/embyupdate"

var checkLatest bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

// selfUpdateCmd represents the self-update command
var selfUpdateCmd = &cobra.Command{
	Use:   "self-update",
	Short: "Update embyupdate to the latest release",
	RunE:  runSelfUpdate,
}

func init() {
	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check GitHub for a newer release")
	rootCmd.AddCommand(selfUpdateCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Printf("embyupdate %s (built %s)\n", version, buildTime)

	if !checkLatest {
		return nil
	}

	latest, found, err := selfupdate.DetectLatest(cmd.Context(), selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		fmt.Println("No releases found.")
		return nil
	}

	current, err := parseVersion(version)
	if err != nil || !latest.LessOrEqual(current.String()) {
		fmt.Printf("Latest release: %s\n", latest.Version())
		return nil
	}
	fmt.Println("You are running the latest release.")
	return nil
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	current, err := parseVersion(version)
	if err != nil {
		return fmt.Errorf("cannot self-update a development build: %w", err)
	}

	ctx := cmd.Context()
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found || latest.LessOrEqual(current.String()) {
		fmt.Printf("Already up to date (%s).\n", current)
		return nil
	}

	if err := applyUpdate(ctx, latest); err != nil {
		return err
	}

	fmt.Printf("Updated to %s.\n", latest.Version())
	return nil
}

func applyUpdate(ctx context.Context, release *selfupdate.Release) error {
	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(ctx, release.AssetURL, release.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}
	return nil
}

// parseVersion accepts release tags with or without a leading v
func parseVersion(v string) (semver.Version, error) {
	return semver.ParseTolerant(v)
}
