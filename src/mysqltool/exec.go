package mysqltool

import (
	"fmt"
	"os"
	"strings"

	"site-backup/src/shellexec"
	"site-backup/src/wpconfig"
)

// ExecTool runs the real mysqldump/mysql binaries. Credentials are passed
// as arguments, SQL as -e statements or stdin, matching the tools' CLI
// contract.
type ExecTool struct {
	MysqlBin     string
	MysqldumpBin string
}

func (t ExecTool) Dump(creds wpconfig.Credentials, destFile string) error {
	out, err := os.Create(destFile)
	if err != nil {
		return err
	}
	defer out.Close()
	argv := []string{t.MysqldumpBin, "--no-tablespaces", "-u", creds.User, "-p" + creds.Password, creds.Name}
	return shellexec.Run(PhaseDump, argv, nil, out)
}

func (t ExecTool) ListTables(creds wpconfig.Credentials) ([]string, error) {
	var out strings.Builder
	argv := []string{t.MysqlBin, "-u", creds.User, "-p" + creds.Password, "-N", creds.Name, "-e", "SHOW TABLES;"}
	if err := shellexec.Run(PhaseList, argv, nil, &out); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func (t ExecTool) DropTables(creds wpconfig.Credentials, tables []string) error {
	if len(tables) == 0 {
		return nil
	}
	var sql strings.Builder
	sql.WriteString("SET FOREIGN_KEY_CHECKS=0; ")
	for _, name := range tables {
		fmt.Fprintf(&sql, "DROP TABLE IF EXISTS `%s`; ", name)
	}
	sql.WriteString("SET FOREIGN_KEY_CHECKS=1;")
	argv := []string{t.MysqlBin, "-u", creds.User, "-p" + creds.Password, creds.Name, "-e", sql.String()}
	return shellexec.Run(PhaseDrop, argv, nil, nil)
}

func (t ExecTool) Import(creds wpconfig.Credentials, dumpFile string) error {
	in, err := os.Open(dumpFile)
	if err != nil {
		return err
	}
	defer in.Close()
	argv := []string{t.MysqlBin, "-u", creds.User, "-p" + creds.Password, creds.Name}
	return shellexec.Run(PhaseImport, argv, in, nil)
}
