package exchange

import (
	"fmt"
	"os"
	"path/filepath"
)

// InboxDir is the subdirectory of the data directory scanned for imports.
const InboxDir = "import"

// ProcessedDir holds inbox files that have been imported.
const ProcessedDir = "import/processed"

// FileInfo describes an importable file in the inbox.
type FileInfo struct {
	Name  string
	Path  string
	Size  int64
	Codec Codec
}

// Scan returns the files in <root>/import/ that a registered codec can read.
// A missing inbox yields no files.
func (r *Registry) Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, InboxDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		c := r.ForFile(e.Name())
		if c == nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			Size:  info.Size(),
			Codec: c,
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, InboxDir, fileName)
	dstDir := filepath.Join(root, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
