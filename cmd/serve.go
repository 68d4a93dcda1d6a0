package cmd

import (
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rpgo/wealth-projector/internal/api"
	"github.com/rpgo/wealth-projector/internal/indicators"
	"github.com/rpgo/wealth-projector/internal/log"

	"github.com/spf13/cobra"
)

var (
	flagPort      string
	flagOrigins   []string
	flagMaxTrials int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve projections over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&flagPort, "port", "p", "", "Listen port (default $WEALTHSIM_PORT or "+api.DefaultPort+")")
	serveCmd.Flags().StringSliceVar(&flagOrigins, "cors-origin", nil, "Allowed CORS origins (default $WEALTHSIM_CORS_ORIGINS, empty allows any)")
	serveCmd.Flags().IntVar(&flagMaxTrials, "max-trials", 0, "Cap on trials per request")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(log.ComponentAPI)
	if err != nil {
		return err
	}
	if os.Getenv("WEALTHSIM_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	port := flagPort
	if port == "" {
		port = api.PortFromEnv()
	}
	origins := flagOrigins
	if len(origins) == 0 {
		origins = splitList(os.Getenv("WEALTHSIM_CORS_ORIGINS"))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.Serve(ctx, net.JoinHostPort("", port), api.Dependencies{
		Provider:       indicators.NewProvider(indicators.ConfigFromEnv(), logger),
		Logger:         logger,
		AllowedOrigins: origins,
		MaxTrials:      flagMaxTrials,
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
