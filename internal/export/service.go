package export

import (
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheerioskun/antglob/internal/models"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Service copies matched files into a destination directory, preserving
// their layout relative to the walk root
type Service struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// NewService creates a new export service
func NewService(fs afero.Fs) *Service {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Service{
		fs:     fs,
		logger: zerolog.Nop(),
	}
}

// SetLogger sets the logger; the default discards everything
func (s *Service) SetLogger(logger zerolog.Logger) {
	s.logger = logger
}

// Options contains configuration for export operations
type Options struct {
	Destination string
	Overwrite   bool
}

// Summary contains information about the export operation
type Summary struct {
	FileCount   int
	DirCount    int
	Skipped     int
	TotalSize   int64
	Destination string
}

// Export copies every file match into opts.Destination. Directory matches
// become empty directories. Matches already inside the destination are
// skipped so that a destination below the root is not copied into itself.
func (s *Service) Export(matches iter.Seq[models.Match], opts Options) (*Summary, error) {
	if err := ValidateExportPath(s.fs, opts.Destination); err != nil {
		return nil, err
	}

	dest, err := filepath.Abs(opts.Destination)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination: %w", err)
	}

	// Create destination directory if it doesn't exist
	if err := s.fs.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	summary := &Summary{Destination: dest}
	for m := range matches {
		if within(m.Path, dest) {
			summary.Skipped++
			s.logger.Debug().Str("path", m.Path).Msg("Skipping match inside destination")
			continue
		}

		target := filepath.Join(dest, filepath.FromSlash(m.Rel))
		if m.IsDir {
			if err := s.fs.MkdirAll(target, 0755); err != nil {
				return summary, fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			summary.DirCount++
			continue
		}

		size, err := s.exportFile(m.Path, target, opts.Overwrite)
		if err != nil {
			return summary, fmt.Errorf("failed to export file %s: %w", m.Rel, err)
		}
		summary.FileCount++
		summary.TotalSize += size
	}

	s.logger.Info().
		Int("files", summary.FileCount).
		Int64("bytes", summary.TotalSize).
		Str("destination", dest).
		Msg("Export finished")
	return summary, nil
}

// exportFile copies a single file, creating its parent directories
func (s *Service) exportFile(sourcePath, destPath string, overwrite bool) (int64, error) {
	destDir := filepath.Dir(destPath)
	if err := s.fs.MkdirAll(destDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	if !overwrite {
		if exists, err := afero.Exists(s.fs, destPath); err != nil {
			return 0, fmt.Errorf("failed to check if destination exists: %w", err)
		} else if exists {
			return 0, fmt.Errorf("destination file exists and overwrite is disabled: %s", destPath)
		}
	}

	return s.copyFile(sourcePath, destPath)
}

// copyFile copies a file from source to destination, preserving attributes
func (s *Service) copyFile(sourcePath, destPath string) (int64, error) {
	srcFile, err := s.fs.Open(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to get source file info: %w", err)
	}

	destFile, err := s.fs.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination file: %w", err)
	}

	n, err := io.Copy(destFile, srcFile)
	if err != nil {
		destFile.Close()
		return n, fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := destFile.Close(); err != nil {
		return n, fmt.Errorf("failed to close destination file: %w", err)
	}

	// Attributes are best effort
	if err := s.fs.Chmod(destPath, srcInfo.Mode().Perm()); err != nil {
		s.logger.Warn().Err(err).Str("path", destPath).Msg("Failed to preserve permissions")
	}
	if err := s.fs.Chtimes(destPath, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		s.logger.Warn().Err(err).Str("path", destPath).Msg("Failed to preserve timestamps")
	}

	return n, nil
}

// ValidateExportPath checks that path is usable as an export destination:
// not empty, not an existing file, and with an existing parent directory
func ValidateExportPath(fs afero.Fs, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path cannot be empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if info, err := fs.Stat(absPath); err == nil && !info.IsDir() {
		return fmt.Errorf("export path is a file: %s", absPath)
	}

	parentDir := filepath.Dir(absPath)
	if _, err := fs.Stat(parentDir); os.IsNotExist(err) {
		return fmt.Errorf("parent directory does not exist: %s", parentDir)
	}

	return nil
}

// within reports whether path is dir or lies below it
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
