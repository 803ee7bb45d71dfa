package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	httpadapter "github.com/couchcryptid/disaster-map/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/disaster-map/internal/adapter/kafka"
	"github.com/couchcryptid/disaster-map/internal/app"
	"github.com/couchcryptid/disaster-map/internal/loader"
	"github.com/couchcryptid/disaster-map/internal/render"
	"github.com/couchcryptid/disaster-map/internal/store"
	"github.com/spf13/cobra"
)

func newRunCommand(c *cli) *cobra.Command {
	var waitLoad bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load the snapshot and apply interaction commands from stdin",
		Long: `run loads the snapshot in the background, serves /healthz, /readyz, /status
and /metrics, and reads one command per line from stdin, printing one JSON frame
per command. Categories appear as soon as their files load.

Commands:
  state                 print the current frame
  year N                select year N and refilter
  preview N             move the slider label to N without refiltering
  toggle CAT on|off     show or hide a loaded category
  zoom in|out|+|-|N     zoom one step, or to scale N
  reset                 back to the unzoomed map
  pan DX DY             drag the map
  wheel X Y FACTOR      zoom by FACTOR around (X, Y)
  resize W H            change the viewport size
  hover ID / unhover ID highlight a marker and show its tooltip
  quit                  stop reading commands

The session ends at end of input, on quit, or on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd.Context(), waitLoad, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&waitLoad, "wait", false, "wait for every category to settle before reading commands")

	return cmd
}

func (c *cli) run(ctx context.Context, waitLoad bool, in io.Reader, out, errw io.Writer) error {
	logger := c.logger
	st := store.New()

	opts := c.stateOptions()
	opts.SelectOnReady = true
	state, err := app.New(st, render.NewRecorder(), logger, c.metrics, opts)
	if err != nil {
		return err
	}

	notifier := loader.NotifierFunc(func(msg string) {
		logger.Error("snapshot incomplete")
		fmt.Fprintln(errw, msg)
	})
	l := c.newLoader(st, loader.WithNotifier(notifier), loader.WithOnReady(state.CategoryReady))

	srv := httpadapter.NewServer(c.cfg.HTTPAddr, l, st, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	loadCtx, cancelLoad := context.WithCancel(ctx)
	loaded := make(chan struct{})
	go func() {
		defer close(loaded)
		if _, err := l.Run(loadCtx); err != nil {
			return
		}
		if c.cfg.KafkaExportEnabled {
			c.export(loadCtx, st)
		}
	}()

	if waitLoad {
		select {
		case <-loaded:
		case <-ctx.Done():
		}
	}

	err = interact(ctx, state, in, out, logger)

	logger.Info("shutting down")
	cancelLoad()
	<-loaded

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.cfg.ShutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Error("http server shutdown error", "error", serr)
	}

	logger.Info("shutdown complete")
	return err
}

func (c *cli) export(ctx context.Context, st *store.Store) {
	writer := kafkaadapter.NewWriter(c.cfg, c.logger)
	defer func() {
		if err := writer.Close(); err != nil {
			c.logger.Error("kafka writer close error", "error", err)
		}
	}()
	if err := writer.Export(ctx, st.All()); err != nil {
		c.logger.Error("snapshot export failed", "error", err)
	}
}

// interact executes commands read from in and writes one JSON frame per
// command to out. Command errors are reported inside the frame; only output
// failures and read errors end the session early. Cancelling ctx stops it
// without waiting for the next line.
func interact(ctx context.Context, state *app.State, in io.Reader, out io.Writer, logger *slog.Logger) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read commands: %w", err)
					}
				default:
				}
				return nil
			}
			cmd := app.ParseCommand(line)
			if cmd.Name == "" {
				continue
			}
			if cmd.Name == "quit" || cmd.Name == "exit" {
				return nil
			}
			res, err := state.Exec(cmd)
			if err != nil {
				logger.Debug("command failed", "command", cmd.String(), "error", err)
			}
			if err := render.Encode(out, res, render.FormatJSON); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
		}
	}
}
