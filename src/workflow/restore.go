package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"site-backup/src/archive"
	"site-backup/src/mysqltool"
	"site-backup/src/perms"
	"site-backup/src/safety"
	"site-backup/src/site"
	"site-backup/src/sitectl"
	"site-backup/src/wpconfig"
)

// Restore orchestrates one site restore. Order matters: the database is
// replaced before any file is touched, so a database failure leaves the
// site's files intact. Once the table drop begins the operation is no
// longer abortable; an interrupt there can leave the database partially
// dropped, which is an accepted risk.
type Restore struct {
	Sites site.Layout
	Owner string
	Group string

	DB      mysqltool.Tool
	Archive archive.Tool
	Sitectl sitectl.Tool
	Ask     safety.Asker
	Log     *log.Logger
}

// RestoreResult describes a completed restore.
type RestoreResult struct {
	VhostRestored bool
	// ReloadFailed is set when the data was fully committed but the
	// webserver reload afterwards failed.
	ReloadFailed bool
}

func (r *Restore) Run(siteName, backupPath string) (*RestoreResult, error) {
	s, err := r.Sites.Resolve(siteName)
	if err != nil {
		return nil, err
	}
	if fi, err := os.Stat(backupPath); err != nil || fi.IsDir() {
		return nil, &NotFoundError{Resource: "backup file", Path: backupPath}
	}

	if err := r.ensureSiteExists(s); err != nil {
		return nil, err
	}

	ok, err := r.Ask("This will PERMANENTLY overwrite site files, database, and vhost config. Are you sure?")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCancelled
	}

	r.Log.Info("starting restore", "site", s.Name, "archive", backupPath)
	staging, release, err := newStaging()
	if err != nil {
		return nil, err
	}
	defer release()

	r.Log.Info("extracting backup file")
	if err := r.Archive.Unpack(backupPath, staging); err != nil {
		return nil, err
	}

	extractedHtdocs := filepath.Join(staging, archive.EntryHtdocs)
	dumpFile := filepath.Join(staging, archive.EntryDump)
	extractedVhost := filepath.Join(staging, archive.EntryVhostPrefix, s.Name)
	if err := validateContents(extractedHtdocs, dumpFile); err != nil {
		return nil, err
	}

	// Credentials come from the target site's config, not the archive: the
	// restored database must use the site's current credentials.
	r.Log.Info("reading database credentials", "config", s.ConfigFile)
	creds, err := wpconfig.Extract(s.ConfigFile)
	if err != nil {
		return nil, err
	}

	if err := r.replaceDatabase(creds, dumpFile); err != nil {
		return nil, err
	}

	res := &RestoreResult{}
	r.Log.Info("replacing site files")
	if err := os.RemoveAll(s.Htdocs); err != nil {
		return nil, fmt.Errorf("remove old document root: %w", err)
	}
	if err := moveDir(extractedHtdocs, s.Htdocs); err != nil {
		return nil, fmt.Errorf("move restored document root: %w", err)
	}
	if fi, err := os.Stat(extractedVhost); err == nil && fi.Mode().IsRegular() {
		r.Log.Info("restoring vhost configuration", "path", s.VhostPath)
		if err := copyFile(extractedVhost, s.VhostPath, 0o644); err != nil {
			return nil, fmt.Errorf("restore vhost config: %w", err)
		}
		res.VhostRestored = true
	}

	r.Log.Info("normalizing file ownership", "owner", r.Owner, "group", r.Group)
	if err := perms.Normalize(s.Htdocs, r.Owner, r.Group); err != nil {
		r.Log.Warn("could not set ownership, set it manually", "err", err)
	}

	r.Log.Info("reloading webserver")
	if err := r.Sitectl.ReloadWebserver(); err != nil {
		// Data is already committed; surface the failure without undoing
		// the restore.
		r.Log.Warn("webserver reload failed", "err", err)
		res.ReloadFailed = true
	}

	r.Log.Info("restore complete", "site", s.Name)
	return res, nil
}

// ensureSiteExists offers to provision a placeholder site when the target
// root is absent. Declining cancels the workflow.
func (r *Restore) ensureSiteExists(s site.Site) error {
	if s.Exists() {
		return nil
	}
	ok, err := r.Ask(fmt.Sprintf("Site %s does not exist. Create a placeholder site to restore into?", s.Name))
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	r.Log.Info("creating placeholder site", "site", s.Name)
	return r.Sitectl.CreateSite(s.Name)
}

// replaceDatabase drops every existing table, then imports the dump. A drop
// failure aborts before import: importing into a non-empty database is
// never safe.
func (r *Restore) replaceDatabase(creds wpconfig.Credentials, dumpFile string) error {
	tables, err := r.DB.ListTables(creds)
	if err != nil {
		return err
	}
	if len(tables) > 0 {
		r.Log.Info("dropping existing tables", "db", creds.Name, "count", len(tables))
		if err := r.DB.DropTables(creds, tables); err != nil {
			return err
		}
	}
	r.Log.Info("importing database from backup", "db", creds.Name)
	return r.DB.Import(creds, dumpFile)
}

func validateContents(htdocs, dump string) error {
	var missing []string
	if fi, err := os.Stat(htdocs); err != nil || !fi.IsDir() {
		missing = append(missing, archive.EntryHtdocs)
	}
	if fi, err := os.Stat(dump); err != nil || !fi.Mode().IsRegular() {
		missing = append(missing, archive.EntryDump)
	}
	if len(missing) > 0 {
		return &InvalidArchiveError{Missing: missing}
	}
	return nil
}
