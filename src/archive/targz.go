package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// TarGz is the real codec: a gzip-compressed tar file with the fixed
// htdocs/, database.sql, nginx/<site> layout.
type TarGz struct{}

func (TarGz) Pack(dest string, in PackInput) (PackResult, error) {
	out, err := os.Create(dest)
	if err != nil {
		return PackResult{}, fmt.Errorf("create archive %s: %w", dest, err)
	}
	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	res := PackResult{Path: dest}
	err = func() error {
		if err := addTree(tw, in.DocRoot, EntryHtdocs); err != nil {
			return err
		}
		if err := addFile(tw, in.DumpFile, EntryDump); err != nil {
			return err
		}
		if in.VhostFile != "" {
			if fi, err := os.Stat(in.VhostFile); err == nil && fi.Mode().IsRegular() {
				if err := addFile(tw, in.VhostFile, path.Join(EntryVhostPrefix, in.SiteName)); err != nil {
					return err
				}
			} else {
				res.VhostMissing = true
			}
		} else {
			res.VhostMissing = true
		}
		return nil
	}()
	if err == nil {
		err = tw.Close()
	}
	if err == nil {
		err = gz.Close()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return PackResult{}, fmt.Errorf("write archive %s: %w", dest, err)
	}
	fi, err := os.Stat(dest)
	if err != nil {
		return PackResult{}, err
	}
	res.Size = fi.Size()
	return res, nil
}

func (TarGz) Unpack(src, destDir string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return &FormatError{Path: src, Err: err}
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &FormatError{Path: src, Err: err}
		}
		target, err := secureJoin(destDir, hdr.Name)
		if err != nil {
			return &FormatError{Path: src, Err: err}
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, fs.FileMode(hdr.Mode)&0o777|0o700); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fs.FileMode(hdr.Mode)&0o777)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		default:
			// Symlinks and devices have no place in a site backup.
			return &FormatError{Path: src, Err: fmt.Errorf("unsupported entry type %d for %s", hdr.Typeflag, hdr.Name)}
		}
	}
}

// secureJoin resolves an archive entry name below destDir, rejecting names
// that would escape it.
func secureJoin(destDir, name string) (string, error) {
	clean := path.Clean(name)
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("entry %q escapes destination", name)
	}
	return filepath.Join(destDir, filepath.FromSlash(clean)), nil
}

func addTree(tw *tar.Writer, root, prefix string) error {
	return filepath.Walk(root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := prefix
		if rel != "." {
			name = path.Join(prefix, filepath.ToSlash(rel))
		}
		switch {
		case fi.IsDir():
			hdr, err := tar.FileInfoHeader(fi, "")
			if err != nil {
				return err
			}
			hdr.Name = name + "/"
			return tw.WriteHeader(hdr)
		case fi.Mode().IsRegular():
			return addFile(tw, p, name)
		default:
			// Skip sockets, devices and symlinks in the document root.
			return nil
		}
	})
}

func addFile(tw *tar.Writer, src, name string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(fi, "")
	if err != nil {
		return err
	}
	hdr.Name = name
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}
