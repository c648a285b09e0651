package pricefix

import (
	"fmt"
	"io"
	"os"
)

// writeBackup copies the bytes of src to dst, replacing any previous copy.
// The copy keeps the permission bits of src.
func writeBackup(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackupWrite, err)
	}
	defer in.Close()
	fi, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackupWrite, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackupWrite, err)
	}
	if _, err = io.Copy(out, in); err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBackupWrite, dst, err)
	}
	return nil
}
