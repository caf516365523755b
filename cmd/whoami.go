package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			if err := a.session.RequireAuth(); err != nil {
				return err
			}

			user, err := a.client.Profile(cmdContext())
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				data, err := json.MarshalIndent(user, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			fmt.Printf("Name:  %s\nEmail: %s\nRole:  %s\n", user.Name, user.Email, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output", "text", "Output format (json or text)")
	return cmd
}
