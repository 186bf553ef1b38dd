package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rampinfotech/meetscribe/internal/pipeline"
)

func newProcessCommand(configFlag *string) *cobra.Command {
	var participants string
	var noSave bool

	cmd := &cobra.Command{
		Use:   "process <audio-url-or-path>",
		Short: "Transcribe a meeting recording and generate minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configFlag)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := signalContext()
			defer cancel()

			result, err := app.pipe.ProcessAudio(ctx, args[0], pipeline.Options{
				Participants: participants,
				SaveFiles:    !noSave,
			})
			if errors.Is(err, pipeline.ErrNoUtterances) {
				fmt.Println("No speech detected in the recording; nothing to do.")
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

func printResult(result *pipeline.Result) {
	if result.SavedFiles != nil {
		fmt.Printf("Outputs saved with index %d:\n", result.OutputIndex)
		for _, key := range []string{"diarized_json", "raw_output", "transcript_txt", "formatted_md", "mom_md", "mom_docx", "transcript_docx"} {
			if path, ok := result.SavedFiles[key]; ok {
				fmt.Printf("  %s\n", path)
			}
		}
	}
	fmt.Printf("Utterances: %d, action items: %d\n", len(result.Utterances), len(result.Minutes.ActionItems))
	if result.DegradedWindows > 0 {
		fmt.Printf("Warning: %d formatting window(s) fell back to plain rendering\n", result.DegradedWindows)
	}
	if result.Minutes.Degraded {
		fmt.Println("Warning: summary was produced by the fallback path")
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
