package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/storekit/storeadm/internal/version"
)

// VersionOptions holds command options
type VersionOptions struct {
	OutputFormat string
	ShortFormat  bool
}

// NewVersionCommand creates a new version command
func NewVersionCommand() *cobra.Command {
	opts := &VersionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print client version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.OutputFormat, "output", "text", "Output format (json or text)")
	flags.BoolVarP(&opts.ShortFormat, "short", "s", false, "Print only the version number")

	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runVersion executes the version command logic
func runVersion(opts *VersionOptions) error {
	clientInfo := version.ClientInfo()

	if opts.ShortFormat {
		fmt.Printf("storeadm version %s, build %s\n", clientInfo["Version"], clientInfo["GitCommit"])
		return nil
	}

	if opts.OutputFormat == "json" {
		jsonData, err := json.MarshalIndent(clientInfo, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format version as JSON: %w", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	const clientTemplate = `Client:
 Version:           {{.Version}}
 API version:       {{.APIVersion}}
 Go version:        {{.GoVersion}}
 Git commit:        {{.GitCommit}}
 Built:             {{.FormattedTime}}
 OS/Arch:           {{.OS}}/{{.Arch}}
`

	tmpl, err := template.New("version").Parse(clientTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse version template: %w", err)
	}
	return tmpl.Execute(os.Stdout, clientInfo)
}
