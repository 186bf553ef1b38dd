package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rampinfotech/meetscribe/internal/config"
	"github.com/rampinfotech/meetscribe/internal/pipeline"
	"github.com/rampinfotech/meetscribe/internal/watcher"
)

func newWatchCommand(configFlag *string) *cobra.Command {
	var participants string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a drop folder and process every new recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configFlag)
			if err != nil {
				return err
			}
			defer app.Close()

			if app.cfg.Paths.Watch == "" {
				return fmt.Errorf("paths.watch must be set in the configuration to use watch mode")
			}

			handler := func(ctx context.Context, filePath string) error {
				_, err := app.pipe.ProcessAudio(ctx, filePath, pipeline.Options{
					Participants: participants,
					SaveFiles:    true,
				})
				if errors.Is(err, pipeline.ErrNoUtterances) {
					app.log.Info(ctx, "No speech detected in %s", filePath)
					return nil
				}
				return err
			}

			w, err := watcher.New(app.cfg.Paths.Watch, config.AllowedExtensions, handler, app.log, app.cfg.Performance.MaxConcurrentChunks)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, cancel := signalContext()
			defer cancel()

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&participants, "participants", "p", "", "Comma-separated participant names for speaker attribution")

	return cmd
}
