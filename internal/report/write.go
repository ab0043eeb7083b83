// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"os"
	"path/filepath"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/afero"
)

const reportWriteFailed = "REPORT_WRITE_FAILED"

// Write stores a rendered report at path, replacing any existing file.
// The parent directory must exist. Failures carry the underlying
// filesystem error.
func Write(fs afero.Fs, path string, data []byte) error {
	if err := atomicWrite(fs, path, data); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "writing report").
			WithTextCode(reportWriteFailed).
			WithMetadata(map[string]any{"path": path})
	}
	return nil
}

// atomicWrite writes data to a temp file in the same directory, then
// renames it over path so readers never see a partial report.
func atomicWrite(fs afero.Fs, path string, data []byte) error {
	// A re-run keeps the mode of the previous report.
	perm := os.FileMode(0o644)
	if info, err := fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	f, err := afero.TempFile(fs, filepath.Dir(path), ".linkaudit-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		fs.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		fs.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := fs.Chmod(tmpPath, perm); err != nil {
		fs.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		fs.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
