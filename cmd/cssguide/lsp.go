package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/cssguide/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the language server on stdio",
	Long: `Serve diagnostics and document formatting over the Language Server
Protocol on stdin/stdout. Logs go to stderr.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		logger := setupLogger(getBoolWithFallback("verbose", false), getBoolWithFallback("quiet", false))

		cfg, err := buildStyleConfig()
		if err != nil {
			return err
		}
		return lsp.NewServer(cfg, version, logger).RunStdio()
	},
}
