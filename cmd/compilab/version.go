package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compilab/internal/diagfmt"
	"compilab/internal/version"
)

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show compilab build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := diagfmt.ParseFormat(versionFormat, diagfmt.FormatPretty, diagfmt.FormatJSON)
		if err != nil {
			return err
		}
		info := version.Current()
		if format == diagfmt.FormatJSON {
			if !versionShowFull {
				info = version.Info{Version: info.Version, GoVersion: info.GoVersion}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		colorMode, _ := cmd.Root().PersistentFlags().GetString("color")
		colored := colorMode == "on" || (colorMode == "auto" && isTerminal(os.Stdout))
		_, err = fmt.Fprintln(cmd.OutOrStdout(), info.String(colored, versionShowFull))
		return err
	},
}
