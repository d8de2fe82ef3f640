package soup

import (
	"bytes"
	"context"
	"encoding/binary"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSteps(t *testing.T, data []byte) []uint32 {
	require.Equal(t, 0, len(data)%4)
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	return out
}

func TestRunLogRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "runlog")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	ctx := context.Background()
	path := filepath.Join(dir, "steps.bin")
	l, err := CreateRunLog(ctx, path)
	require.NoError(t, err)

	epoch1 := []uint32{1, 16384, 65, 2}
	epoch2 := []uint32{3, 3, 3, 3}
	require.NoError(t, l.Append(epoch1))
	require.NoError(t, l.Append(epoch2))
	require.NoError(t, l.Close(ctx))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	// Headerless: epoch count is file length over 4*npairs.
	assert.Equal(t, 2, len(data)/(4*len(epoch1)))
	assert.Equal(t, append(epoch1, epoch2...), decodeSteps(t, data))
}

func TestRunLogGzip(t *testing.T) {
	dir, err := ioutil.TempDir("", "runlog")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	ctx := context.Background()
	path := filepath.Join(dir, "steps.bin.gz")
	l, err := CreateRunLog(ctx, path)
	require.NoError(t, err)

	steps := []uint32{7, 8, 9, 10, 11, 12, 13, 14}
	require.NoError(t, l.Append(steps))
	require.NoError(t, l.Close(ctx))

	raw, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	data, err := ioutil.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, steps, decodeSteps(t, data))
}

func TestRunLogBadPath(t *testing.T) {
	_, err := CreateRunLog(context.Background(), filepath.Join("/nonexistent-dir-for-runlog", "x.bin"))
	assert.Error(t, err)
}
