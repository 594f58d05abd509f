package archive

// Entry names inside a backup archive. Restore validity requires EntryHtdocs
// and EntryDump; the vhost entry is optional.
const (
	EntryHtdocs      = "htdocs"
	EntryDump        = "database.sql"
	EntryVhostPrefix = "nginx"
)

// PackInput names the pieces packed into one backup archive.
type PackInput struct {
	// DocRoot is the site's document root; stored recursively as htdocs/.
	DocRoot string
	// DumpFile is the SQL dump; stored as database.sql.
	DumpFile string
	// VhostFile is the nginx vhost file; stored as nginx/<SiteName> when it
	// exists. A missing vhost is a warning, not an error.
	VhostFile string
	SiteName  string
}

// PackResult describes the archive Pack produced.
type PackResult struct {
	Path string
	Size int64
	// VhostMissing is set when VhostFile did not exist and the entry was
	// omitted.
	VhostMissing bool
}

// Tool packs and unpacks backup archives. The workflows depend on this
// interface so tests can substitute a fake for the tar.gz codec.
type Tool interface {
	Pack(dest string, in PackInput) (PackResult, error)
	Unpack(src, destDir string) error
}

// FormatError reports that a file is not a readable archive of the expected
// format. Layout validation (which entries are present) is the restore
// workflow's job, not the codec's.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return "not a valid backup archive: " + e.Path + ": " + e.Err.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }
