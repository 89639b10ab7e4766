package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/getzep/zep-extract/config"
	"github.com/getzep/zep-extract/internal"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool
	dumpConfig  bool
	generateKey bool
)

var cmd = &cobra.Command{
	Use:   "zep-extract",
	Short: "zep-extract recognizes named entities in text and generates topical tags with an LLM",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var extractCmd = &cobra.Command{
	Use:     "extract [text]",
	Short:   "Run a single extraction and print the JSON result",
	Example: `echo "Barack Obama visited Paris in 2011." | zep-extract extract`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtractCommand(cmd, args)
	},
}

var dumpJsonSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for zep-extract's configuration file",
	Example: "zep-extract json-schema > zep_extract_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return nil
	},
}

func init() {
	cmd.AddCommand(extractCmd)
	cmd.AddCommand(dumpJsonSchemaCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")
	cmd.PersistentFlags().
		BoolVarP(&generateKey, "generate-token", "g", false, "generate a new JWT token")
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
