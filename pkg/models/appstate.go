package models

import (
	"github.com/getzep/zep-extract/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	// Recognizer is the shared, read-only entity recognition model.
	Recognizer Recognizer
	LLMClient  ZepLLM
	Extractor  Extractor
	Config     *config.Config
}
