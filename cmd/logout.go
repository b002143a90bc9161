// File: travelgo/cmd/logout.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"travelgo/config"
	"travelgo/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.NewCredentialStore(config.AppConfig.TokenPath)
		if err != nil {
			return err
		}
		if err := store.Remove(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
