package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// File permission constants.
const (
	dirPermission  = 0o750
	filePermission = 0o600
)

// FileBackend writes one file per collection under dir. Writes go to a
// temporary file that is synced and renamed over the target.
type FileBackend struct {
	dir     string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewFileBackend creates dir if needed. With compress set, documents are
// zstd encoded and stored with a .json.zst suffix.
func NewFileBackend(dir string, compress bool) (*FileBackend, error) {
	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	b := &FileBackend{dir: dir}
	if compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			enc.Close()
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		b.encoder, b.decoder = enc, dec
	}
	return b, nil
}

// Name implements Backend.
func (b *FileBackend) Name() string { return DriverFile }

// Path returns the file that holds collection.
func (b *FileBackend) Path(collection string) string {
	name := collection + ".json"
	if b.encoder != nil {
		name += ".zst"
	}
	return filepath.Join(b.dir, name)
}

// Get implements Backend.
func (b *FileBackend) Get(_ context.Context, collection string) ([]byte, error) {
	data, err := os.ReadFile(b.Path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.decoder == nil {
		return data, nil
	}
	return b.decoder.DecodeAll(data, nil)
}

// Put implements Backend.
func (b *FileBackend) Put(_ context.Context, collection string, data []byte) error {
	if b.encoder != nil {
		data = b.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
	}
	target := b.Path(collection)
	tmp := target + ".tmp"

	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, target)
}

// Close implements Backend.
func (b *FileBackend) Close() error {
	if b.encoder != nil {
		_ = b.encoder.Close()
		b.decoder.Close()
	}
	return nil
}
