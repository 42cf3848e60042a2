package receipt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileRef describes a receipt file written to disk.
type FileRef struct {
	Path    string
	Name    string
	Bytes   int64
	Entries int
}

// FileWriter persists receipts to files in a directory.
type FileWriter struct {
	dir string
}

// NewFileWriter creates a writer that stores receipt files in the given
// directory.
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir}
}

// Dir returns the directory where receipt files are written.
func (w *FileWriter) Dir() string {
	return w.dir
}

// Write persists one channel's receipts, naming the file after the channel
// and the run that produced it.
func (w *FileWriter) Write(channel, runID string, r *Receipts) (FileRef, error) {
	filename := fmt.Sprintf("receipts-%s-%s.json", channel, runID)
	filePath := filepath.Join(w.dir, filename)

	file, err := os.Create(filePath)
	if err != nil {
		return FileRef{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Entries()); err != nil {
		return FileRef{}, fmt.Errorf("failed to write receipts: %w", err)
	}

	fi, err := file.Stat()
	if err != nil {
		return FileRef{}, fmt.Errorf("failed to stat file: %w", err)
	}

	return FileRef{
		Path:    filePath,
		Name:    filename,
		Bytes:   fi.Size(),
		Entries: r.Len(),
	}, nil
}
