package main

import (
	"github.com/FrenchMajesty/geo-compliance/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the classifier over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		clf, err := newClassifier()
		if err != nil {
			return err
		}

		categories, regulations := clf.Taxonomy()
		srv, err := server.New(server.Config{
			Classifier:  clf,
			Categories:  categories,
			Regulations: regulations,
			Workers:     cfg.Batch.Workers,
			Logger:      log,
		})
		if err != nil {
			return err
		}

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		return srv.Run(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
}
