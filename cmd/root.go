// File: travelgo/cmd/root.go
package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"travelgo/api"
	"travelgo/config"
	"travelgo/session"
	"travelgo/tui"
	"travelgo/utils"
)

var rootCmd = &cobra.Command{
	Use:   "travelgo",
	Short: "Terminal client for the TravelGo marketplace",
	Long: `travelgo is a terminal client for the TravelGo travel booking
marketplace: browse and search tours, book them, review them and chat
with providers. Providers manage their listings and orders from the
same binary.

Configuration is read from config.yaml or environment variables
(API_BASE_URL, OAUTH_CLIENT_ID, FIREBASE_PROJECT_ID, ...).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configFile != "" {
			config.LoadConfigFile(configFile)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, sess, err := buildSession()
		if err != nil {
			return err
		}
		utils.FirebaseInit()
		return tui.Run(client, sess, utils.GetFirestoreClient())
	},
}

var configFile string

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to an explicit config file")
}

// buildSession wires the REST client, the credential store and the
// session manager, and restores any persisted identity.
func buildSession() (*api.Client, *session.Manager, error) {
	client := api.FromConfig()
	store, err := session.NewCredentialStore(config.AppConfig.TokenPath)
	if err != nil {
		return nil, nil, err
	}
	sess := session.NewManager(client, store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sess.Restore(ctx)

	return client, sess, nil
}
