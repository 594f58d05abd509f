package store

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// Entry is one backup archive discovered in the backup directory.
type Entry struct {
	Site      string
	Timestamp string // YYYY-MM-DD-HHMMSS, sortable
	Path      string
	Size      int64
}

// Archive filenames follow <site>-<YYYY-MM-DD-HHMMSS>.tar.gz.
var namePattern = regexp.MustCompile(`^(.+)-(\d{4}-\d{2}-\d{2}-\d{6})\.tar\.gz$`)

// List returns the archives in dir, newest last, optionally filtered to one
// site. Files that do not match the naming convention are ignored. A
// missing directory yields an empty list: no backups have been taken yet.
func List(dir, site string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []Entry
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := namePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if site != "" && m[1] != site {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{
			Site:      m[1],
			Timestamp: m[2],
			Path:      filepath.Join(dir, e.Name()),
			Size:      fi.Size(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Site != out[j].Site {
			return out[i].Site < out[j].Site
		}
		return out[i].Timestamp < out[j].Timestamp
	})
	return out, nil
}
