package infrastructure

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/logger"
)

// FileLoggerAdapter writes JSON lines to a log file
type FileLoggerAdapter struct {
	SlogLoggerAdapter
	filePath string

	mu   sync.Mutex
	file *os.File
}

// NewFileLoggerAdapter opens logPath for appending, creating parent directories
func NewFileLoggerAdapter(logPath string, level slog.Level) (*FileLoggerAdapter, error) {
	if logPath == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &FileLoggerAdapter{
		SlogLoggerAdapter: SlogLoggerAdapter{logger: logger.NewWithWriter(file, level).Logger},
		filePath:          logPath,
		file:              file,
	}, nil
}

func (f *FileLoggerAdapter) Path() string {
	return f.filePath
}

// Close flushes and closes the log file; later writes are dropped
func (f *FileLoggerAdapter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

var _ ports.Logger = (*FileLoggerAdapter)(nil)
