package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rampinfotech/meetscribe/internal/pipeline"
	"github.com/rampinfotech/meetscribe/internal/transcript"
)

func newVTTCommand(configFlag *string) *cobra.Command {
	var participants string
	var noSave bool

	cmd := &cobra.Command{
		Use:   "vtt <transcript.vtt>",
		Short: "Generate formatted transcript and minutes from a Teams VTT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read vtt file: %w", err)
			}

			app, err := newApp(*configFlag)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := signalContext()
			defer cancel()

			utterances := transcript.ParseVTT(string(data))
			result, err := app.pipe.ProcessUtterances(ctx, filepath.Base(args[0]), utterances, pipeline.Options{
				Participants: participants,
				SaveFiles:    !noSave,
			})
			if errors.Is(err, pipeline.ErrNoUtterances) {
				fmt.Println("The VTT file contains no utterances; nothing to do.")
				return nil
			}
			if err != nil {
				return err
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&participants, "participants", "p", "", "Comma-separated participant names for speaker attribution")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Skip writing output files")

	return cmd
}
