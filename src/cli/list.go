package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"site-backup/src/store"
)

func newListCmd(stdout, _ io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list [SITE]",
		Short: "List backup archives in the backup directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			siteName := ""
			if len(args) == 1 {
				siteName = args[0]
			}
			entries, err := store.List(cfg.BackupDir, siteName)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SITE\tTIMESTAMP\tSIZE\tPATH")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Site, e.Timestamp, humanize.Bytes(uint64(e.Size)), e.Path)
			}
			return tw.Flush()
		},
	}
}
