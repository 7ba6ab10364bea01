package main

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interpreter over HTTP",
	Long: `Starts the HTTP API: POST programs to /api/run, store them under /data/,
watch machine state on /events/state (SSE) or interactively over the
/api/session websocket. Prometheus metrics are exposed on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if !cmd.Flags().Changed("addr") {
			addr = cfg.Serve.Addr
		}
		dir, _ := cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") {
			dir = cfg.Serve.DataDir
		}

		a := newAPI(logger, dir)
		logger.Info("listening", "addr", addr, "dir", dir)

		return http.ListenAndServe(addr, withAccessLog(logger, a))
	},
}

func withAccessLog(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		log.Info("request", "method", req.Method, "path", req.URL.Path, "remote", req.RemoteAddr)
		next.ServeHTTP(w, req)
	})
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Address to bind the API server to.")
	serveCmd.Flags().String("dir", "", "Directory for stored programs.")
}
