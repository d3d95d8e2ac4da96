// Package images executes image rename plans produced by the converter.
package images

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/accu-org/accu-website/converter"
)

var (
	// ErrMissingSource indicates a planned image that does not exist.
	ErrMissingSource = errors.New("image source missing")
	// ErrInvalidName indicates a rename target that is not a plain file name.
	ErrInvalidName = errors.New("invalid image name")
)

// Copy copies every planned image from its original location under srcRoot
// to its new name in dstDir, creating dstDir if needed. It stops at the
// first failure.
func Copy(renames []converter.Rename, srcRoot, dstDir string) error {
	if len(renames) == 0 {
		return nil
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("create image directory: %w", err)
	}

	for _, rename := range renames {
		if err := copyOne(rename, srcRoot, dstDir); err != nil {
			return err
		}
	}
	return nil
}

func copyOne(rename converter.Rename, srcRoot, dstDir string) error {
	if rename.New == "" || rename.New != path.Base(rename.New) || strings.ContainsAny(rename.New, `/\`) || rename.New == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, rename.New)
	}

	src := filepath.Join(srcRoot, filepath.FromSlash(rename.Original))
	dst := filepath.Join(dstDir, rename.New)

	in, err := os.Open(src)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissingSource, src)
	}
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrMissingSource, src)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close image: %w", err)
	}
	return nil
}
