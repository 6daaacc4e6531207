package main

import (
	"fmt"

	"tweetvault/pkg/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP JSON API",
	Long: `Serve the archive over a local HTTP JSON API for browser UIs. The listen
address comes from --addr, the TWEETVAULT_ADDR environment variable, or the
config file, in that order of precedence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		addr := serveAddrFlag
		if addr == "" {
			addr = cfg.Addr
		}

		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer logger.Sync()

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		return server.New(dbConn, addr, logger).Start()
	},
}

func initServeCmd() {
	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "Listen address, e.g. 127.0.0.1:8080")
}
