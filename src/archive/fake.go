package archive

import (
	"os"
	"path/filepath"
)

// Fake is an in-memory Tool for workflow tests. Pack records its input and
// writes a placeholder file; Unpack materializes UnpackFiles under the
// destination directory.
type Fake struct {
	PackCalls   []PackInput
	PackDest    []string
	PackErr     error
	VhostAbsent bool

	// UnpackFiles maps archive-relative paths to contents. Paths ending in
	// "/" become directories.
	UnpackFiles map[string]string
	UnpackCalls []string
	UnpackDest  []string
	UnpackErr   error
}

func (f *Fake) Pack(dest string, in PackInput) (PackResult, error) {
	f.PackCalls = append(f.PackCalls, in)
	f.PackDest = append(f.PackDest, dest)
	if f.PackErr != nil {
		return PackResult{}, f.PackErr
	}
	if err := os.WriteFile(dest, []byte("fake archive"), 0o644); err != nil {
		return PackResult{}, err
	}
	return PackResult{Path: dest, Size: 12, VhostMissing: f.VhostAbsent}, nil
}

func (f *Fake) Unpack(src, destDir string) error {
	f.UnpackCalls = append(f.UnpackCalls, src)
	f.UnpackDest = append(f.UnpackDest, destDir)
	if f.UnpackErr != nil {
		return f.UnpackErr
	}
	for rel, body := range f.UnpackFiles {
		target := filepath.Join(destDir, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, []byte(body), 0o644); err != nil {
			return err
		}
	}
	return nil
}
