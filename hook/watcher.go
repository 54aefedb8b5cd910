package hook

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher arms a Session whenever the library database changes
type Watcher struct {
	dbPath  string
	filter  *Filter
	session *Session
	fs      *fsnotify.Watcher
	logger  zerolog.Logger
}

// NewWatcher starts watching the directory holding dbPath. Events are only
// delivered once Run is called.
func NewWatcher(dbPath string, filter *Filter, session *Session, logger zerolog.Logger) (*Watcher, error) {
	if dbPath == "" {
		return nil, errors.New("library database path is required")
	}
	if filter == nil || session == nil {
		return nil, errors.New("watcher requires a filter and a session")
	}

	dbPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("resolve library database path: %w", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// SQLite rewrites journal files next to the database, so watch the directory
	dir := filepath.Dir(dbPath)
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		dbPath:  dbPath,
		filter:  filter,
		session: session,
		fs:      fs,
		logger:  logger.With().Str("library_db", dbPath).Logger(),
	}, nil
}

// Run processes events until ctx is done. The underlying watcher is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	w.logger.Info().Str("filter", w.filter.String()).Msg("Watching library database")

	for {
		select {
		case <-ctx.Done():
			w.drain()
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Library watcher error")
		}
	}
}

// drainQuiet is how long drain waits for late events before giving up
const drainQuiet = 50 * time.Millisecond

// drain handles events still in flight when the context ended, returning once
// no event arrived for drainQuiet
func (w *Watcher) drain() {
	quiet := time.NewTimer(drainQuiet)
	defer quiet.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
			quiet.Reset(drainQuiet)
		case <-quiet.C:
			return
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	event := Event{
		Path:   ev.Name,
		Name:   filepath.Base(ev.Name),
		DBName: filepath.Base(w.dbPath),
		Op:     ev.Op.String(),
	}

	matched, err := w.filter.Match(event)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", event.Path).Msg("Failed to evaluate watch filter")
		return
	}
	if !matched {
		return
	}

	w.logger.Trace().Str("path", event.Path).Str("op", event.Op).Msg("Library change")
	w.session.Changed()
}
