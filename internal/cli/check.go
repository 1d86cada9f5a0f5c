package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/apicradle/apicradle/internal/speccheck"
	"github.com/spf13/cobra"
)

var checkRunner = runCheck

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate an OpenAPI document",
		Long:  "Load and validate an OpenAPI v3 document, such as a previously generated openapi.yaml.",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := cmd.Flags().GetString("input")
			if err != nil {
				return err
			}
			input = strings.TrimSpace(input)
			if input == "" {
				return newUsageError("check: --input is required")
			}
			return checkRunner(cmd.Context(), input)
		},
	}

	cmd.Flags().String("input", "", "Path to the OpenAPI document to validate")

	return cmd
}

func runCheck(ctx context.Context, input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return newUsageError(fmt.Sprintf("check: read %q: %v", input, err))
	}

	doc, err := speccheck.Validate(ctx, data)
	if err != nil {
		var se *speccheck.SpecError
		if errors.As(err, &se) {
			msg := fmt.Sprintf("spec: %s", se.Message)
			if se.JSONPointer != "" {
				msg = fmt.Sprintf("%s\nPointer: %s", msg, se.JSONPointer)
			}
			return newUsageError(msg)
		}
		return err
	}

	title, version := "", ""
	pathCount := 0
	if doc.Info != nil {
		title = doc.Info.Title
		version = doc.Info.Version
	}
	if doc.Paths != nil {
		pathCount = len(doc.Paths)
	}
	fmt.Fprintf(os.Stdout, "OK: %s v%s (%d paths)\n", title, version, pathCount)
	return nil
}
