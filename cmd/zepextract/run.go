package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/pkg/auth"
	"github.com/getzep/zep-extract/pkg/extractors"
	"github.com/getzep/zep-extract/pkg/llms"
	"github.com/getzep/zep-extract/pkg/models"
	"github.com/getzep/zep-extract/pkg/nlp"
	"github.com/getzep/zep-extract/pkg/observability"
	"github.com/getzep/zep-extract/pkg/server"
)

const shutdownTimeout = 10 * time.Second

// run is the entrypoint for the zep-extract server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring zep-extract: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting zep-extract server version %s", config.VersionString)

	config.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	appState, err := NewAppState(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	srv, err := server.Create(appState)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Errorf("Error shutting down tracing: %v", err)
		}
	}()

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// NewAppState builds the shared, read-only dependencies: the entity
// recognizer (model loaded once), the completion client and the extractor.
func NewAppState(ctx context.Context, cfg *config.Config) (*models.AppState, error) {
	recognizer, err := nlp.NewRecognizer(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating entity recognizer: %w", err)
	}
	log.Infof("Using entity recognizer: %s", recognizer.Name())

	llmClient, err := llms.NewLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating LLM client: %w", err)
	}
	log.Infof("Using %s LLM: %s", cfg.LLM.Service, llmClient.Model())

	extractor, err := extractors.NewEntityTagExtractor(recognizer, llmClient, cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating extractor: %w", err)
	}

	return &models.AppState{
		Recognizer: recognizer,
		LLMClient:  llmClient,
		Extractor:  extractor,
		Config:     cfg,
	}, nil
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		if err := writeConfigYAML(os.Stdout, cfg); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}
	if generateKey {
		token, err := auth.GenerateJWT(cfg)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(token)
		os.Exit(0)
	}
}

// writeConfigYAML prints the effective config with secrets masked.
func writeConfigYAML(w io.Writer, cfg *config.Config) error {
	redacted := config.Redacted(cfg)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&redacted); err != nil {
		return err
	}
	return enc.Close()
}
