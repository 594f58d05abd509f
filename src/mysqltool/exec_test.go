package mysqltool

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"site-backup/src/shellexec"
	"site-backup/src/wpconfig"
)

var testCreds = wpconfig.Credentials{Name: "wp_example", User: "wpuser", Password: "pw"}

// stub writes a shell script standing in for mysql/mysqldump. Arguments are
// appended to argsFile so tests can assert the exact invocation.
func stub(t *testing.T, argsFile, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts unavailable")
	}
	path := filepath.Join(t.TempDir(), "stub.sh")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" >> " + argsFile + "\n" + body
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDumpWritesStdoutToFile(t *testing.T) {
	tmp := t.TempDir()
	argsFile := filepath.Join(tmp, "args")
	tool := ExecTool{MysqldumpBin: stub(t, argsFile, "echo 'CREATE TABLE wp_posts (id INT);'")}

	dest := filepath.Join(tmp, "database.sql")
	if err := tool.Dump(testCreds, dest); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "CREATE TABLE wp_posts") {
		t.Fatalf("dump content: %q", data)
	}
	args, _ := os.ReadFile(argsFile)
	for _, want := range []string{"--no-tablespaces", "wpuser", "-ppw", "wp_example"} {
		if !strings.Contains(string(args), want) {
			t.Fatalf("missing arg %q in %q", want, args)
		}
	}
}

func TestDumpFailureCarriesStderr(t *testing.T) {
	tmp := t.TempDir()
	tool := ExecTool{MysqldumpBin: stub(t, filepath.Join(tmp, "args"), "echo 'Unknown database' >&2; exit 2")}
	err := tool.Dump(testCreds, filepath.Join(tmp, "database.sql"))
	var se *shellexec.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected shellexec.Error, got %v", err)
	}
	if se.Phase != PhaseDump || !strings.Contains(se.Stderr, "Unknown database") {
		t.Fatalf("unexpected error detail: %#v", se)
	}
}

func TestListTables(t *testing.T) {
	tmp := t.TempDir()
	tool := ExecTool{MysqlBin: stub(t, filepath.Join(tmp, "args"), "printf 'wp_posts\\nwp_users\\n'")}
	tables, err := tool.ListTables(testCreds)
	if err != nil {
		t.Fatalf("ListTables: %v", err)
	}
	if len(tables) != 2 || tables[0] != "wp_posts" || tables[1] != "wp_users" {
		t.Fatalf("tables: %v", tables)
	}
}

func TestListTablesEmptyDatabase(t *testing.T) {
	tmp := t.TempDir()
	tool := ExecTool{MysqlBin: stub(t, filepath.Join(tmp, "args"), "")}
	tables, err := tool.ListTables(testCreds)
	if err != nil {
		t.Fatalf("ListTables: %v", err)
	}
	if len(tables) != 0 {
		t.Fatalf("expected no tables, got %v", tables)
	}
}

func TestDropTablesBatchesWithFKGuard(t *testing.T) {
	tmp := t.TempDir()
	argsFile := filepath.Join(tmp, "args")
	tool := ExecTool{MysqlBin: stub(t, argsFile, "")}
	if err := tool.DropTables(testCreds, []string{"wp_posts", "wp_users"}); err != nil {
		t.Fatalf("DropTables: %v", err)
	}
	args, _ := os.ReadFile(argsFile)
	sql := string(args)
	if !strings.Contains(sql, "SET FOREIGN_KEY_CHECKS=0;") || !strings.Contains(sql, "SET FOREIGN_KEY_CHECKS=1;") {
		t.Fatalf("FK guard missing: %q", sql)
	}
	if !strings.Contains(sql, "DROP TABLE IF EXISTS `wp_posts`;") || !strings.Contains(sql, "DROP TABLE IF EXISTS `wp_users`;") {
		t.Fatalf("drop statements missing: %q", sql)
	}
}

func TestDropTablesNoTablesIsNoop(t *testing.T) {
	tmp := t.TempDir()
	argsFile := filepath.Join(tmp, "args")
	tool := ExecTool{MysqlBin: stub(t, argsFile, "")}
	if err := tool.DropTables(testCreds, nil); err != nil {
		t.Fatalf("DropTables: %v", err)
	}
	if _, err := os.Stat(argsFile); !os.IsNotExist(err) {
		t.Fatal("mysql should not have been invoked for zero tables")
	}
}

func TestImportStreamsDumpFile(t *testing.T) {
	tmp := t.TempDir()
	captured := filepath.Join(tmp, "stdin")
	tool := ExecTool{MysqlBin: stub(t, filepath.Join(tmp, "args"), "cat > "+captured)}
	dump := filepath.Join(tmp, "database.sql")
	if err := os.WriteFile(dump, []byte("INSERT INTO wp_posts VALUES (1);\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := tool.Import(testCreds, dump); err != nil {
		t.Fatalf("Import: %v", err)
	}
	data, err := os.ReadFile(captured)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "INSERT INTO wp_posts") {
		t.Fatalf("stdin content: %q", data)
	}
}
