package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"site-backup/src/archive"
	"site-backup/src/config"
	"site-backup/src/mysqltool"
	"site-backup/src/safety"
	"site-backup/src/site"
	"site-backup/src/workflow"
)

func newBackupCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "backup SITE",
		Short: "Back up a site's files, database, and nginx config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			siteName := args[0]
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts := getSafetyOptions(cmd)
			if opts.DryRun {
				return renderBackupPlan(stdout, cfg, siteName)
			}

			wf := &workflow.Backup{
				Sites:     site.Layout{WWWRoot: cfg.WWWRoot, NginxDir: cfg.NginxDir},
				BackupDir: cfg.BackupDir,
				Owner:     cfg.Owner,
				Group:     cfg.Group,
				DB:        mysqltool.ExecTool{MysqlBin: cfg.MysqlBin, MysqldumpBin: cfg.MysqldumpBin},
				Archive:   archive.TarGz{},
				Ask:       safety.NewAsker(opts, os.Stdin, stdout),
				Log:       newLogger(cmd, stderr),
			}
			res, err := wf.Run(siteName)
			if errors.Is(err, workflow.ErrCancelled) {
				fmt.Fprintln(stdout, "Backup cancelled by user.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Backup file created at: %s (%s)\n", res.ArchivePath, humanize.Bytes(uint64(res.Size)))
			return nil
		},
	}
}

func renderBackupPlan(w io.Writer, cfg config.Config, siteName string) error {
	l := site.Layout{WWWRoot: cfg.WWWRoot, NginxDir: cfg.NginxDir}
	s, err := l.Resolve(siteName)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tSOURCE\tDESTINATION")
	fmt.Fprintf(tw, "dump database\t%s\t(staging)/database.sql\n", s.ConfigFile)
	fmt.Fprintf(tw, "archive files\t%s\thtdocs/\n", s.Htdocs)
	fmt.Fprintf(tw, "archive vhost\t%s\tnginx/%s\n", s.VhostPath, s.Name)
	fmt.Fprintf(tw, "write archive\t\t%s\n", filepath.Join(cfg.BackupDir, s.Name+"-<timestamp>.tar.gz"))
	return tw.Flush()
}
