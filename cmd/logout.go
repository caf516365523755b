package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/storekit/storeadm/config"
	"github.com/storekit/storeadm/internal/filter"
)

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and drop all cached data",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			if err := a.session.Logout(); err != nil {
				return err
			}
			// Explicit logout also clears every cached entry and the
			// saved filter snapshot.
			a.cache.Clear()
			os.Remove(cachePath())
			filter.Clear(config.GetStateDir())
			fmt.Println("Logged out.")
			return nil
		},
	}
}
