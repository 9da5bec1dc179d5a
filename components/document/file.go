package document

import (
	"errors"
	"io"
	"os"
	"strconv"

	"go.uber.org/atomic"
)

// File reads a document from the local filesystem into the buffer.
type File struct {
	status *atomic.Int32
	fp     *os.File
	Document
}

var (
	_ ReadableDocument = (*File)(nil)
	_ ClosableDocument = (*File)(nil)
)

func NewFile(fname string) (*File, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fileInfo, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	if fileInfo.IsDir() {
		fp.Close()
		return nil, errors.New("file document could not be a directory")
	}
	return &File{
		status: atomic.NewInt32(Unread),
		fp:     fp,
		Document: New(map[string]string{
			"filename": fileInfo.Name(),
			"modtime":  strconv.FormatInt(fileInfo.ModTime().Unix(), 10),
		}),
	}, nil
}

func (d *File) ReadStatus() ReadStatus {
	return d.status.Load()
}

func (d *File) ReadAll() error {
	if !d.status.CompareAndSwap(Unread, Reading) {
		if d.status.Load() == ReadCompleted {
			return nil
		}
		return ErrReading
	}
	if _, err := io.Copy(d.Buffer(), d.fp); err != nil {
		d.Buffer().Reset()
		d.status.Store(Unread)
		return err
	}
	d.status.Store(ReadCompleted)
	return nil
}

func (d *File) Close() error {
	return d.fp.Close()
}
