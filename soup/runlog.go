package soup

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"

	gerrors "github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// RunLog is the append-only per-epoch record of pair step counts.  One
// Append writes the whole pairSteps array as little-endian uint32s in
// index order, no header, no trailer; readers recover the epoch count
// from the file length.  A path ending in .gz gzips the stream.
type RunLog struct {
	f   file.File
	bw  *bufio.Writer
	gz  *gzip.Writer
	w   io.Writer
	buf []byte
}

// CreateRunLog opens (truncating) a run log at path.  A local path whose
// directory does not exist is an error.
func CreateRunLog(ctx context.Context, path string) (*RunLog, error) {
	if !strings.Contains(path, "://") {
		if _, err := os.Stat(filepath.Dir(path)); err != nil {
			return nil, errors.Wrapf(err, "runlog %s", path)
		}
	}
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "runlog %s", path)
	}
	l := &RunLog{f: f}
	l.bw = bufio.NewWriter(f.Writer(ctx))
	l.w = l.bw
	if strings.HasSuffix(path, ".gz") {
		l.gz = gzip.NewWriter(l.bw)
		l.w = l.gz
	}
	log.Printf("run-length log: %s", path)
	return l, nil
}

// Append writes one epoch's step counts.
func (l *RunLog) Append(steps []uint32) error {
	if cap(l.buf) < 4*len(steps) {
		l.buf = make([]byte, 4*len(steps))
	}
	buf := l.buf[:4*len(steps)]
	for i, v := range steps {
		binary.LittleEndian.PutUint32(buf[4*i:], v)
	}
	_, err := l.w.Write(buf)
	return errors.Wrap(err, "runlog append")
}

// Close flushes and closes the log.
func (l *RunLog) Close(ctx context.Context) error {
	e := gerrors.Once{}
	if l.gz != nil {
		e.Set(l.gz.Close())
	}
	e.Set(l.bw.Flush())
	e.Set(l.f.Close(ctx))
	return e.Err()
}
