package main

import (
	cmd "github.com/getzep/zep-extract/cmd/zepextract"
	"github.com/getzep/zep-extract/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting zep-extract")
	cmd.Execute()
}
