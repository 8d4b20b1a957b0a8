// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chatsql/chatsql-mcp/internal/extraction"
	"github.com/chatsql/chatsql-mcp/internal/render"
)

func newExtractCommand(a *app) *cobra.Command {
	var (
		format   string
		envelope string
		trace    bool
	)

	cmd := &cobra.Command{
		Use:   "extract [FILE]",
		Short: "Extract a quiz document from FILE or standard input",
		Long: "Reads raw model output, strips a ```json fence, patches missing outer braces, " +
			"parses the result and prints the seven quiz fields. Exits non-zero when the " +
			"repaired text is still not valid JSON.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = a.cfg.OutputFormat
			}

			result, err := extraction.DefaultPipeline().RunWithMeta(cmd.Context(), raw)
			if trace {
				a.logger.Info("normalized input",
					zap.Strings("applied_steps", result.AppliedSteps),
					zap.Int("candidate_bytes", len(result.Candidate)),
				)
			}
			if err != nil {
				var malformed *extraction.MalformedDocumentError
				if errors.As(err, &malformed) {
					if malformed.Repairable {
						fmt.Fprintln(cmd.ErrOrStderr(), "the JSON has defects beyond fences and outer braces; regenerate the response")
					}
				}
				return err
			}

			out, err := render.Record(result.Record, format, envelope)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", render.FormatJSON, "output format (json, yaml); defaults to CHATSQL_OUTPUT_FORMAT")
	cmd.Flags().StringVar(&envelope, "envelope", render.EnvelopeNone, "wrap the record (none, dify)")
	cmd.Flags().BoolVar(&trace, "trace", false, "log the normalization steps that changed the input")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(b), nil
}
