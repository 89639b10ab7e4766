package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/pkg/models"
)

func runExtractCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	config.SetLogLevel(cfg)

	text, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	appState, err := NewAppState(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	return extractTo(cmd.Context(), appState.Extractor, text, cmd.OutOrStdout())
}

// readInput joins args into the input text, or reads stdin when there are none.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if stdin == nil {
		return "", errors.New("no text given and stdin is unavailable")
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func extractTo(ctx context.Context, extractor models.Extractor, text string, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := extractor.Extract(ctx, text)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
