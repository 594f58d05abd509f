package workflow

import "os"

// newStaging allocates the workflow's temporary staging directory. The
// returned release func removes it and must run on every exit path.
func newStaging() (string, func(), error) {
	dir, err := os.MkdirTemp("", "site-backup-")
	if err != nil {
		return "", nil, err
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}
