// File: travelgo/cmd/whoami.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the identity behind the stored credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, err := buildSession()
		if err != nil {
			return err
		}
		user := sess.CurrentUser()
		if user == nil {
			fmt.Println("not logged in")
			return nil
		}
		role := "customer"
		if user.IsProvider() {
			role = "provider"
		}
		fmt.Printf("%s (@%s) · %s · %s\n", user.DisplayName(), user.Username, user.Email, role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
