package mysqltool

import (
	"errors"
	"os"

	"site-backup/src/wpconfig"
)

// Fake is an in-memory Tool for workflow tests. It records call order so
// tests can assert, e.g., that a failing drop leaves import uninvoked.
type Fake struct {
	// Tables is the current table set; DropTables removes from it, Import
	// replaces it with ImportedTables.
	Tables         []string
	ImportedTables []string
	// DumpSQL is written to the destination file by Dump.
	DumpSQL string

	// Calls records phase names in invocation order.
	Calls []string
	// FailPhase makes the named phase return FailErr.
	FailPhase string
	FailErr   error

	DumpedTo    []string
	Dropped     [][]string
	ImportedSQL []string
}

func NewFake() *Fake {
	return &Fake{FailErr: errors.New("fake tool failure")}
}

func (f *Fake) fail(phase string) error {
	if f.FailPhase == phase {
		return f.FailErr
	}
	return nil
}

func (f *Fake) Dump(_ wpconfig.Credentials, destFile string) error {
	f.Calls = append(f.Calls, PhaseDump)
	if err := f.fail(PhaseDump); err != nil {
		return err
	}
	f.DumpedTo = append(f.DumpedTo, destFile)
	return os.WriteFile(destFile, []byte(f.DumpSQL), 0o600)
}

func (f *Fake) ListTables(wpconfig.Credentials) ([]string, error) {
	f.Calls = append(f.Calls, PhaseList)
	if err := f.fail(PhaseList); err != nil {
		return nil, err
	}
	return append([]string(nil), f.Tables...), nil
}

func (f *Fake) DropTables(_ wpconfig.Credentials, tables []string) error {
	f.Calls = append(f.Calls, PhaseDrop)
	if err := f.fail(PhaseDrop); err != nil {
		return err
	}
	f.Dropped = append(f.Dropped, tables)
	f.Tables = nil
	return nil
}

func (f *Fake) Import(_ wpconfig.Credentials, dumpFile string) error {
	f.Calls = append(f.Calls, PhaseImport)
	if err := f.fail(PhaseImport); err != nil {
		return err
	}
	data, err := os.ReadFile(dumpFile)
	if err != nil {
		return err
	}
	f.ImportedSQL = append(f.ImportedSQL, string(data))
	f.Tables = append([]string(nil), f.ImportedTables...)
	return nil
}
