package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"site-backup/src/version"
)

// writeTestConfig points the CLI at throwaway directories.
func writeTestConfig(t *testing.T, backupDir, wwwRoot, nginxDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	body := "backup_dir: " + backupDir + "\nwww_root: " + wwwRoot + "\nnginx_dir: " + nginxDir + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootHelpListsSubcommands(t *testing.T) {
	stdout, _, err := runCmd(t, "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, want := range []string{"backup", "restore", "list", "version"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("help missing %q:\n%s", want, stdout)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(stdout) != version.Version {
		t.Fatalf("version output: %q", stdout)
	}
}

func TestListCmdRendersEntries(t *testing.T) {
	backupDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(backupDir, "example-2024-06-01-093000.tar.gz"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := writeTestConfig(t, backupDir, t.TempDir(), t.TempDir())

	stdout, _, err := runCmd(t, "list", "--config", cfgPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(stdout, "example") || !strings.Contains(stdout, "2024-06-01-093000") {
		t.Fatalf("list output:\n%s", stdout)
	}
}

func TestListCmdFiltersBySite(t *testing.T) {
	backupDir := t.TempDir()
	for _, name := range []string{"example-2024-06-01-093000.tar.gz", "blog-2024-06-01-093000.tar.gz"} {
		if err := os.WriteFile(filepath.Join(backupDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfgPath := writeTestConfig(t, backupDir, t.TempDir(), t.TempDir())

	stdout, _, err := runCmd(t, "list", "example", "--config", cfgPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(stdout, "blog") {
		t.Fatalf("filter not applied:\n%s", stdout)
	}
}

func TestBackupDryRunMakesNoChanges(t *testing.T) {
	backupDir := filepath.Join(t.TempDir(), "backups")
	cfgPath := writeTestConfig(t, backupDir, t.TempDir(), t.TempDir())

	stdout, _, err := runCmd(t, "backup", "example", "--dry-run", "--config", cfgPath)
	if err != nil {
		t.Fatalf("backup --dry-run: %v", err)
	}
	if !strings.Contains(stdout, "dump database") || !strings.Contains(stdout, "write archive") {
		t.Fatalf("plan output:\n%s", stdout)
	}
	if _, err := os.Stat(backupDir); !os.IsNotExist(err) {
		t.Fatal("dry run must not create the backup directory")
	}
}

func TestRestoreDryRunShowsPlan(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), t.TempDir(), t.TempDir())
	stdout, _, err := runCmd(t, "restore", "example", "/tmp/example.tar.gz", "--dry-run", "--config", cfgPath)
	if err != nil {
		t.Fatalf("restore --dry-run: %v", err)
	}
	for _, want := range []string{"extract archive", "replace database", "replace files", "reload webserver"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("plan missing %q:\n%s", want, stdout)
		}
	}
}

func TestBackupMissingSiteFails(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), t.TempDir(), t.TempDir())
	_, _, err := runCmd(t, "backup", "absent", "--config", cfgPath, "--yes")
	if err == nil {
		t.Fatal("expected error for missing site")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("error should name the missing resource: %v", err)
	}
}
