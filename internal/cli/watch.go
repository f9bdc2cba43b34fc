package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/config"
	"github.com/jmylchreest/duotint/internal/image"
	"github.com/jmylchreest/duotint/internal/output"
	"github.com/jmylchreest/duotint/internal/session"
)

// defaultDebounce coalesces the burst of events an editor produces on save.
const defaultDebounce = 150 * time.Millisecond

type watchOptions struct {
	config *config.Flags
	source sourceOptions

	format   string
	preview  bool
	debounce time.Duration
}

func newWatchCmd(g *globalOptions) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <image>",
		Short: "Re-extract the theme whenever an image file changes",
		Long: `Watch an image file and print its palette every time the file changes.

Saves that replace the file (write to a temporary file, then rename) are
followed because the parent directory is watched. Events arriving close
together are coalesced, and a change that arrives while the previous image
is still being processed supersedes it. Press Ctrl-C to stop.

Examples:
  duotint watch wallpaper.png
  duotint watch -f css ~/Pictures/current.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, g, opts, args[0])
		},
	}

	fs := cmd.Flags()
	opts.config = config.BindFlags(fs)
	opts.source.register(fs, false)
	fs.StringVarP(&opts.format, "format", "f", "hex", "output format (hex, rgb, json, code, css, preview)")
	fs.BoolVar(&opts.preview, "preview", false, "force colour swatches in preview output")
	fs.DurationVar(&opts.debounce, "debounce", defaultDebounce, "quiet period before a change is processed")

	return cmd
}

func runWatch(cmd *cobra.Command, g *globalOptions, opts *watchOptions, target string) error {
	cfg, err := opts.config.Resolve()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	path, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", target, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", image.ErrInvalidInput, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: watch needs an image file, got directory %s", image.ErrInvalidInput, target)
	}

	registry := output.NewDefaultRegistry(output.Options{
		Colours: opts.preview || isTerminal(cmd.OutOrStdout()),
		Logger:  g.logger,
	})
	if _, err := registry.Get(opts.format); err != nil {
		return fmt.Errorf("%w (valid formats: %s)", err, strings.Join(registry.Names(), ", "))
	}

	loader, err := opts.source.loader(cfg, nil)
	if err != nil {
		return err
	}
	sess, err := session.New(loader, cfg.Extractor, g.logger.Named("session"))
	if err != nil {
		return err
	}
	defer sess.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := &watchLoop{
		path:     path,
		debounce: opts.debounce,
		session:  sess,
		logger:   g.logger.Named("watch"),
		render: func(p colour.Palette) error {
			files, err := registry.Render(opts.format, p)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(output.Concat(files))
			return err
		},
	}
	return loop.run(ctx, watcher.Events, watcher.Errors)
}

// watchLoop turns file events for one path into session submissions and
// renders every published palette.
type watchLoop struct {
	path     string
	debounce time.Duration
	session  *session.Session
	logger   hclog.Logger
	render   func(colour.Palette) error
}

// run submits the file once, then again after each debounced change, until
// ctx is done or the event stream closes.
func (w *watchLoop) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}

	w.logger.Info("watching", "path", w.path)
	if _, err := w.session.Submit(ctx, w.path); err != nil {
		return err
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopped watching", "path", w.path)
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Trace("file event", "op", ev.Op.String(), "name", ev.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-fire:
			fire = nil
			if _, err := w.session.Submit(ctx, w.path); err != nil {
				return err
			}

		case r, ok := <-w.session.Results():
			if !ok {
				return nil
			}
			if r.Err != nil {
				// The session has logged it; keep the last good palette.
				continue
			}
			if err := w.render(r.Palette); err != nil {
				return fmt.Errorf("failed to render palette: %w", err)
			}
		}
	}
}

// relevant reports whether ev changed the watched file's contents.
func (w *watchLoop) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
