package util

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ReadFile returns the contents of path, read through a read-only memory
// mapping.
//
// The mapping is released before returning; the result is a private copy
// that stays valid if the file is rewritten later. Empty files cannot be
// mapped and return an empty slice. If mapping fails the file is read with
// os.ReadFile instead.
func ReadFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %q: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}
	if stat.Size() == 0 {
		return []byte{}, nil
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		slog.Debug("mmap failed, using fallback", "file", path, "size", stat.Size(), "error", err)
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				path, err, readErr)
		}
		return data, nil
	}

	data := make([]byte, len(m))
	copy(data, m)
	if err := m.Unmap(); err != nil {
		return nil, fmt.Errorf("failed to unmap %q: %w", path, err)
	}
	return data, nil
}
