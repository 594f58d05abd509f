package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file unless --config is given.
const DefaultPath = "/etc/site-backup/config.yml"

// Config holds the filesystem conventions and external tool commands the
// workflows depend on. Every field has a working default so the tool runs
// without any config file on a standard WordOps-style host.
type Config struct {
	// WWWRoot is the directory containing one subdirectory per site.
	WWWRoot string `yaml:"www_root"`
	// BackupDir is where produced archives are written.
	BackupDir string `yaml:"backup_dir"`
	// NginxDir contains one vhost file per site, named after the site.
	NginxDir string `yaml:"nginx_dir"`

	// Owner and Group are applied when normalizing ownership of restored
	// trees and freshly created backup directories.
	Owner string `yaml:"owner"`
	Group string `yaml:"group"`

	// MysqlBin and MysqldumpBin name the database client binaries.
	MysqlBin     string `yaml:"mysql_bin"`
	MysqldumpBin string `yaml:"mysqldump_bin"`

	// ProvisionCmd creates a placeholder site during restore. The literal
	// token {site} is replaced with the site name.
	ProvisionCmd []string `yaml:"provision_cmd"`
	// ReloadCmd reloads the webserver after a restore.
	ReloadCmd []string `yaml:"reload_cmd"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WWWRoot:      "/var/www",
		BackupDir:    "/var/www/backups",
		NginxDir:     "/etc/nginx/sites-available",
		Owner:        "www-data",
		Group:        "www-data",
		MysqlBin:     "mysql",
		MysqldumpBin: "mysqldump",
		ProvisionCmd: []string{"wo", "site", "create", "{site}", "--html"},
		ReloadCmd:    []string{"wo", "stack", "reload", "--nginx"},
	}
}

// Load reads the config file at path, applying defaults for any field the
// file leaves unset. A missing file at the default path is not an error; a
// missing file at an explicitly requested path is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
