package backup

import (
	"archive/zip"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
)

// writeArchive zips srcDir into dst. Entries are stored relative to srcDir
// with forward slashes, so the archive unpacks the same everywhere.
func writeArchive(dst, srcDir string) (err error) {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	zw := zip.NewWriter(f)
	err = filepath.WalkDir(srcDir, func(path string, d iofs.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, rerr := filepath.Rel(srcDir, path)
		if rerr != nil {
			return rerr
		}
		info, ierr := d.Info()
		if ierr != nil {
			return ierr
		}
		hdr, herr := zip.FileInfoHeader(info)
		if herr != nil {
			return herr
		}
		hdr.Name = filepath.ToSlash(rel)
		hdr.Method = zip.Deflate

		w, cerr := zw.CreateHeader(hdr)
		if cerr != nil {
			return cerr
		}
		in, oerr := os.Open(path)
		if oerr != nil {
			return oerr
		}
		defer in.Close()
		_, copyErr := io.Copy(w, in)
		return copyErr
	})
	if err != nil {
		return fmt.Errorf("archiving %s: %w", srcDir, err)
	}
	return zw.Close()
}
