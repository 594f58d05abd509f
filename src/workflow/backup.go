package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"site-backup/src/archive"
	"site-backup/src/mysqltool"
	"site-backup/src/perms"
	"site-backup/src/safety"
	"site-backup/src/site"
	"site-backup/src/wpconfig"
)

// TimestampFormat is the sortable timestamp embedded in archive names.
const TimestampFormat = "2006-01-02-150405"

// Backup orchestrates one site backup: locate site, check the backup
// directory, read credentials, dump the database into staging, pack the
// archive. The staging directory is released on every exit path.
type Backup struct {
	Sites     site.Layout
	BackupDir string
	Owner     string
	Group     string

	DB      mysqltool.Tool
	Archive archive.Tool
	Ask     safety.Asker
	Log     *log.Logger

	// Now is injectable for deterministic archive names in tests.
	Now func() time.Time
}

// BackupResult describes a completed backup.
type BackupResult struct {
	ArchivePath  string
	Size         int64
	VhostMissing bool
}

func (b *Backup) Run(siteName string) (*BackupResult, error) {
	s, err := b.Sites.Resolve(siteName)
	if err != nil {
		return nil, err
	}
	if !s.HasHtdocs() {
		return nil, &NotFoundError{Resource: "site document root", Path: s.Htdocs}
	}
	b.Log.Info("starting backup", "site", s.Name)

	if err := b.ensureBackupDir(); err != nil {
		return nil, err
	}

	b.Log.Info("reading database credentials", "config", s.ConfigFile)
	creds, err := wpconfig.Extract(s.ConfigFile)
	if err != nil {
		return nil, err
	}
	b.Log.Info("credentials found", "db", creds.Name)

	staging, release, err := newStaging()
	if err != nil {
		return nil, err
	}
	defer release()

	dumpFile := filepath.Join(staging, archive.EntryDump)
	b.Log.Info("dumping database", "db", creds.Name)
	if err := b.DB.Dump(creds, dumpFile); err != nil {
		return nil, err
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	name := fmt.Sprintf("%s-%s.tar.gz", s.Name, now().Format(TimestampFormat))
	dest := filepath.Join(b.BackupDir, name)

	b.Log.Info("archiving site files, database and vhost config", "archive", dest)
	res, err := b.Archive.Pack(dest, archive.PackInput{
		DocRoot:   s.Htdocs,
		DumpFile:  dumpFile,
		VhostFile: s.VhostPath,
		SiteName:  s.Name,
	})
	if err != nil {
		return nil, err
	}
	if res.VhostMissing {
		b.Log.Warn("vhost config not found, skipping", "path", s.VhostPath)
	}
	b.Log.Info("backup complete", "archive", res.Path, "size", humanize.Bytes(uint64(res.Size)))
	return &BackupResult{ArchivePath: res.Path, Size: res.Size, VhostMissing: res.VhostMissing}, nil
}

// ensureBackupDir creates the backup base directory after confirmation when
// it is missing. Declining cancels the workflow; ownership repair on the
// fresh directory is advisory.
func (b *Backup) ensureBackupDir() error {
	if fi, err := os.Stat(b.BackupDir); err == nil && fi.IsDir() {
		return nil
	}
	ok, err := b.Ask(fmt.Sprintf("Backup directory %s does not exist. Create it now?", b.BackupDir))
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	b.Log.Info("creating backup directory", "path", b.BackupDir)
	if err := os.MkdirAll(b.BackupDir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}
	if err := perms.Normalize(b.BackupDir, b.Owner, b.Group); err != nil {
		b.Log.Warn("could not set ownership on backup directory", "path", b.BackupDir, "err", err)
	}
	return nil
}
