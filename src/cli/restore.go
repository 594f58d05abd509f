package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"site-backup/src/archive"
	"site-backup/src/config"
	"site-backup/src/mysqltool"
	"site-backup/src/safety"
	"site-backup/src/site"
	"site-backup/src/sitectl"
	"site-backup/src/workflow"
)

func newRestoreCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "restore SITE BACKUP_FILE",
		Short: "Restore a site from a backup archive",
		Long: `Restore a site's files, database, and nginx config from a backup archive.

The existing document root, database contents, and vhost file are replaced.
There is no automatic prior backup and no coordination with concurrent
backup or restore runs against the same site.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			siteName, backupPath := args[0], args[1]
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts := getSafetyOptions(cmd)
			if opts.DryRun {
				return renderRestorePlan(stdout, cfg, siteName, backupPath)
			}

			wf := &workflow.Restore{
				Sites:   site.Layout{WWWRoot: cfg.WWWRoot, NginxDir: cfg.NginxDir},
				Owner:   cfg.Owner,
				Group:   cfg.Group,
				DB:      mysqltool.ExecTool{MysqlBin: cfg.MysqlBin, MysqldumpBin: cfg.MysqldumpBin},
				Archive: archive.TarGz{},
				Sitectl: sitectl.ExecTool{ProvisionCmd: cfg.ProvisionCmd, ReloadCmd: cfg.ReloadCmd},
				Ask:     safety.NewAsker(opts, os.Stdin, stdout),
				Log:     newLogger(cmd, stderr),
			}
			res, err := wf.Run(siteName, backupPath)
			if errors.Is(err, workflow.ErrCancelled) {
				fmt.Fprintln(stdout, "Restore cancelled by user.")
				return nil
			}
			if err != nil {
				return err
			}
			if res.ReloadFailed {
				fmt.Fprintln(stdout, "Restore complete, but the webserver reload failed; reload it manually.")
				return nil
			}
			fmt.Fprintln(stdout, "Restore complete.")
			return nil
		},
	}
}

func renderRestorePlan(w io.Writer, cfg config.Config, siteName, backupPath string) error {
	l := site.Layout{WWWRoot: cfg.WWWRoot, NginxDir: cfg.NginxDir}
	s, err := l.Resolve(siteName)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tSOURCE\tDESTINATION")
	fmt.Fprintf(tw, "extract archive\t%s\t(staging)\n", backupPath)
	fmt.Fprintf(tw, "replace database\t(staging)/database.sql\tdatabase from %s\n", s.ConfigFile)
	fmt.Fprintf(tw, "replace files\t(staging)/htdocs\t%s\n", s.Htdocs)
	fmt.Fprintf(tw, "replace vhost\t(staging)/nginx/%s\t%s\n", s.Name, s.VhostPath)
	fmt.Fprintln(tw, "reload webserver\t\t")
	return tw.Flush()
}
