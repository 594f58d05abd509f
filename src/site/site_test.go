package site

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePaths(t *testing.T) {
	l := Layout{WWWRoot: "/var/www", NginxDir: "/etc/nginx/sites-available"}
	s, err := l.Resolve("example.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.Root != "/var/www/example.com" {
		t.Fatalf("root: %q", s.Root)
	}
	if s.Htdocs != "/var/www/example.com/htdocs" {
		t.Fatalf("htdocs: %q", s.Htdocs)
	}
	if s.ConfigFile != "/var/www/example.com/htdocs/wp-config.php" {
		t.Fatalf("config: %q", s.ConfigFile)
	}
	if s.VhostPath != "/etc/nginx/sites-available/example.com" {
		t.Fatalf("vhost: %q", s.VhostPath)
	}
}

func TestResolveRejectsBadNames(t *testing.T) {
	l := Layout{WWWRoot: "/var/www", NginxDir: "/etc/nginx/sites-available"}
	for _, name := range []string{"", "  ", "a/b", `a\b`, ".", ".."} {
		if _, err := l.Resolve(name); err == nil {
			t.Fatalf("expected error for name %q", name)
		}
	}
}

func TestExistsAndHasHtdocs(t *testing.T) {
	www := t.TempDir()
	l := Layout{WWWRoot: www, NginxDir: t.TempDir()}
	s, err := l.Resolve("demo")
	if err != nil {
		t.Fatal(err)
	}
	if s.Exists() || s.HasHtdocs() {
		t.Fatal("site should not exist yet")
	}
	if err := os.MkdirAll(filepath.Join(www, "demo", "htdocs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if !s.Exists() || !s.HasHtdocs() {
		t.Fatal("site should exist now")
	}
}
