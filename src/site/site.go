package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Layout holds the host's filesystem conventions for sites.
type Layout struct {
	// WWWRoot contains one directory per site, named after the site.
	WWWRoot string
	// NginxDir contains one vhost file per site, named after the site.
	NginxDir string
}

// Site is the set of paths belonging to one named site.
type Site struct {
	Name string
	// Root is the site directory, e.g. /var/www/example.com.
	Root string
	// Htdocs is the document root below Root.
	Htdocs string
	// ConfigFile is the wp-config.php inside Htdocs.
	ConfigFile string
	// VhostPath is the nginx vhost file for the site.
	VhostPath string
}

// Resolve maps a site name to its conventional paths. Names are plain
// directory names; anything that could escape WWWRoot is rejected.
func (l Layout) Resolve(name string) (Site, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Site{}, fmt.Errorf("site name must not be empty")
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return Site{}, fmt.Errorf("invalid site name %q", name)
	}
	root := filepath.Join(l.WWWRoot, name)
	htdocs := filepath.Join(root, "htdocs")
	return Site{
		Name:       name,
		Root:       root,
		Htdocs:     htdocs,
		ConfigFile: filepath.Join(htdocs, "wp-config.php"),
		VhostPath:  filepath.Join(l.NginxDir, name),
	}, nil
}

// Exists reports whether the site root directory is present.
func (s Site) Exists() bool {
	fi, err := os.Stat(s.Root)
	return err == nil && fi.IsDir()
}

// HasHtdocs reports whether the document root is present.
func (s Site) HasHtdocs() bool {
	fi, err := os.Stat(s.Htdocs)
	return err == nil && fi.IsDir()
}
