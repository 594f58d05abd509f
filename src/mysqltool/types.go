package mysqltool

import "site-backup/src/wpconfig"

// Tool is the narrow interface over the MySQL client tools the workflows
// need. Keep it small so the fake stays trivial.
type Tool interface {
	// Dump writes a full schema+data dump of the database to destFile.
	Dump(creds wpconfig.Credentials, destFile string) error
	// ListTables returns the table names in the database. An empty result
	// is valid: an empty database has nothing to drop.
	ListTables(creds wpconfig.Credentials) ([]string, error)
	// DropTables drops the given tables in one batch with foreign key
	// checks disabled for the duration.
	DropTables(creds wpconfig.Credentials, tables []string) error
	// Import streams dumpFile into the database.
	Import(creds wpconfig.Credentials, dumpFile string) error
}

// Phase labels used in tool errors.
const (
	PhaseDump   = "mysqldump"
	PhaseList   = "table listing"
	PhaseDrop   = "table drop"
	PhaseImport = "database import"
)
