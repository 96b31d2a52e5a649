package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jakejg/outward-bound-chat-fe/internal/app"
	"github.com/jakejg/outward-bound-chat-fe/internal/stub"
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Terminal chat client for the Outward Bound course assistant",
	RunE: func(cmd *cobra.Command, args []string) error {
		os.Exit(app.Run())
		return nil
	},
}

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local stand-in for the answering service",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := cmd.Flags().GetString("addr")
		if err != nil {
			return err
		}

		router := stub.NewRouter(stub.NewHandler())
		server := &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      10 * time.Second,
		}

		slog.Info("Starting stub answering service", "addr", addr)
		return server.ListenAndServe()
	},
}

func init() {
	rootCmd.PersistentFlags().String("service-url", "", "base URL of the answering service")
	rootCmd.PersistentFlags().String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")

	// Flags override the environment and .env file when set.
	cobra.CheckErr(viper.BindPFlag("CHAT_SERVICE_URL", rootCmd.PersistentFlags().Lookup("service-url")))
	cobra.CheckErr(viper.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level")))

	stubCmd.Flags().String("addr", ":3001", "listen address for the stub server")
	rootCmd.AddCommand(stubCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
