package main

import (
	"fmt"
	"os"

	"donorlink/internal/api"
	"donorlink/internal/config"
	"donorlink/internal/donation"
	"donorlink/internal/importer"
	"donorlink/internal/logger"
	"donorlink/internal/quotation"
	"donorlink/internal/session"
	"donorlink/internal/token"

	"github.com/spf13/cobra"
)

// app holds the wired client stack shared by all commands.
type app struct {
	cfg       *config.Config
	client    *api.Client
	sessions  *session.Controller
	quotes    quotation.Service
	requests  donation.Service
	importers importer.Service
	workflow  *quotation.Workflow
}

var a *app

// printNavigator plays the rendering layer's routing role: redirects
// are printed, not followed.
type printNavigator struct{}

func (printNavigator) Navigate(path string) {
	fmt.Printf("→ %s\n", path)
}

// printNotifier is the toast sink.
type printNotifier struct{}

func (printNotifier) Success(msg string) { fmt.Println("✔", msg) }
func (printNotifier) Error(msg string)   { fmt.Println("✘", msg) }

func newApp() *app {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)

	tokens := token.NewFileStore(cfg.TokenPath)
	client := api.NewClient(cfg.APIBaseURL, tokens,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithRateLimit(cfg.RequestsPerSecond, cfg.RequestBurst),
	)

	sessions := session.NewController(client, tokens, printNavigator{})
	client.SetUnauthorizedHook(sessions.HandleUnauthorized)

	quotes := quotation.NewService(client)
	requests := donation.NewService(client)

	return &app{
		cfg:       cfg,
		client:    client,
		sessions:  sessions,
		quotes:    quotes,
		requests:  requests,
		importers: importer.NewService(client),
		workflow:  quotation.NewWorkflow(quotes, requests, printNotifier{}),
	}
}

var rootCmd = &cobra.Command{
	Use:   "donorctl",
	Short: "Client for the donation coordination platform",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		a = newApp()
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(quotationsCmd)
}

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
