package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"site-backup/src/version"
)

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the site-backup version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(stdout, version.Version)
		},
	}
}
