package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/embyupdate/hook"
	"github.com/s0up4200/embyupdate/updater"
)

var (
	libraryDB   string
	watchFilter string
	lockFile    string
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh Emby on exit if the library database changed",
	Long: `Watch the music library database and remember whether it changed.

When embyupdate receives SIGINT or SIGTERM it triggers a single Emby library
refresh if at least one change was seen, then exits.`,
	PreRunE: initializeApp,
	RunE:    runWatch,
}

// execCmd represents the exec command
var execCmd = &cobra.Command{
	Use:   "exec -- command [args...]",
	Short: "Run a library tool and refresh Emby if it changed the library",
	Long: `Run the given command while watching the music library database.

After the command exits a single Emby library refresh is triggered if the
database changed while it was running. The command's exit status is kept.`,
	Example: `  embyupdate exec -- beet import ~/incoming`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runExec,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(execCmd)

	for _, c := range []*cobra.Command{watchCmd, execCmd} {
		c.Flags().StringVar(&libraryDB, "library-db", "", "override watch.library_db")
		c.Flags().StringVar(&watchFilter, "filter", "", "override watch.filter expression")
		c.Flags().StringVar(&lockFile, "lock-file", "", "override watch.lock_file")
	}
}

// newWatchSession wires a watcher to a session that runs the updater. The
// returned release function must be called once the session is done.
func newWatchSession(cmd *cobra.Command) (*hook.Session, *hook.Watcher, func(), error) {
	if cmd.Flags().Changed("library-db") {
		cfg.Watch.LibraryDB = libraryDB
	}
	if cmd.Flags().Changed("filter") {
		cfg.Watch.Filter = watchFilter
	}
	if cmd.Flags().Changed("lock-file") {
		cfg.Watch.LockFile = lockFile
	}

	if cfg.Watch.LibraryDB == "" {
		return nil, nil, nil, fmt.Errorf("no library database configured. Please set watch.library_db in config or pass --library-db")
	}

	filter, err := hook.CompileFilter(cfg.Watch.Filter)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid watch filter: %w", err)
	}

	release := func() {}
	if cfg.Watch.LockFile != "" {
		unlock, err := hook.Lock(cfg.Watch.LockFile)
		if err != nil {
			return nil, nil, nil, err
		}
		release = func() {
			if err := unlock(); err != nil {
				logger.Warn().Err(err).Str("lock", cfg.Watch.LockFile).Msg("Failed to release lock")
			}
		}
	}

	session := hook.NewSession(updater.New(cfg.Emby, logger), logger)
	watcher, err := hook.NewWatcher(cfg.Watch.LibraryDB, filter, session, logger)
	if err != nil {
		release()
		return nil, nil, nil, err
	}

	return session, watcher, sync.OnceFunc(release), nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	session, watcher, release, err := newWatchSession(cmd)
	if err != nil {
		return err
	}
	defer release()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	return watchUntilSignal(cmd.Context(), session, watcher, signals)
}

// watchUntilSignal runs watcher until a signal arrives or ctx is done, then
// fires the session once
func watchUntilSignal(ctx context.Context, session *hook.Session, watcher *hook.Watcher, signals <-chan os.Signal) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	g.Go(func() error {
		select {
		case sig := <-signals:
			logger.Info().Str("signal", sig.String()).Msg("Exit requested")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	// The refresh gets its own context so the cancelled watch context does not abort it
	_, err := session.Exit(context.Background())
	return err
}

func runExec(cmd *cobra.Command, args []string) error {
	session, watcher, release, err := newWatchSession(cmd)
	if err != nil {
		return err
	}
	defer release()

	child := exec.Command(args[0], args[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	code, err := superviseChild(cmd.Context(), session, watcher, child)
	if err != nil {
		return err
	}
	if code != 0 {
		release()
		os.Exit(code)
	}
	return nil
}

// superviseChild runs child while watcher feeds session, then fires the
// session once. It returns the child's exit status in shell convention
// (128+signal when the child was killed by a signal).
//
// SIGTERM and SIGHUP are forwarded to the child. SIGINT is not: the terminal
// already delivers it to the whole foreground process group.
func superviseChild(ctx context.Context, session *hook.Session, watcher *hook.Watcher, child *exec.Cmd) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	var childErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()

		if err := child.Start(); err != nil {
			return fmt.Errorf("start %s: %w", child.Path, err)
		}

		done := make(chan error, 1)
		go func() { done <- child.Wait() }()

		for {
			select {
			case sig := <-signals:
				logger.Info().Str("signal", sig.String()).Msg("Signal received, waiting for command to exit")
				if sig == os.Interrupt {
					continue
				}
				if err := child.Process.Signal(sig); err != nil {
					logger.Warn().Err(err).Str("signal", sig.String()).Msg("Failed to forward signal")
				}
			case childErr = <-done:
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil {
		return 0, err
	}

	if _, err := session.Exit(context.Background()); err != nil {
		return 0, err
	}

	return exitCode(childErr)
}

// exitCode maps the result of exec.Cmd.Wait to a process exit status
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, err
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal()), nil
	}
	return exitErr.ExitCode(), nil
}
