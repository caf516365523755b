package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/storekit/storeadm/config"
)

var rootCmd = &cobra.Command{
	Use:   "storeadm",
	Short: "Storefront catalog administration client",
	Long: `storeadm manages products and categories of a remote storefront
catalog API: list, filter, create, edit and delete products against a
token-gated session.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if level, err := logrus.ParseLevel(config.GetLogLevel()); err == nil {
			logrus.SetLevel(level)
		}
	},
}

func init() {
	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(
		NewLoginCommand(),
		NewLogoutCommand(),
		NewWhoamiCommand(),
		NewProductsCommand(),
		NewCategoriesCommand(),
		NewBrowseCommand(),
		NewVersionCommand(),
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
