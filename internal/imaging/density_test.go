package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/garyhouston/jpegsegs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readJFIFDensity returns the density of the JFIF APP0 segment. ok is false
// unless that segment comes first and is the only one in the stream.
func readJFIFDensity(data []byte) (int, int, bool) {
	scanner, err := jpegsegs.NewScanner(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	var x, y, seen int
	for i := 0; ; i++ {
		marker, buf, err := scanner.Scan()
		if err != nil || marker == jpegsegs.SOS || marker == jpegsegs.EOI {
			break
		}
		if marker != jpegsegs.APP0 || !bytes.HasPrefix(buf, jfifID) {
			continue
		}
		if i != 0 || len(buf) < 12 || buf[7] != 1 {
			return 0, 0, false
		}
		x = int(binary.BigEndian.Uint16(buf[8:10]))
		y = int(binary.BigEndian.Uint16(buf[10:12]))
		seen++
	}
	return x, y, seen == 1
}

func readPNGDensity(data []byte) (uint32, uint32, bool) {
	offset := 8
	for offset+12 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[offset : offset+4]))
		typ := string(data[offset+4 : offset+8])
		if typ == "pHYs" && n == 9 && offset+12+n <= len(data) {
			body := data[offset+8 : offset+8+n]
			return binary.BigEndian.Uint32(body[0:4]), binary.BigEndian.Uint32(body[4:8]), body[8] == 1
		}
		offset += 12 + n
	}
	return 0, 0, false
}

func stampJFIF(t *testing.T, data []byte, dpiX, dpiY int) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stamped.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, writeJFIF(f, data, dpiX, dpiY))
	require.NoError(t, f.Close())
	out, err := os.ReadFile(path)
	require.NoError(t, err)
	return out
}

func TestWriteJFIFReplacesExistingAPP0(t *testing.T) {
	var plain bytes.Buffer
	require.NoError(t, jpeg.Encode(&plain, image.NewGray(image.Rect(0, 0, 16, 8)), nil))

	first := stampJFIF(t, plain.Bytes(), 72, 72)
	x, y, ok := readJFIFDensity(first)
	require.True(t, ok)
	assert.Equal(t, 72, x)
	assert.Equal(t, 72, y)

	second := stampJFIF(t, first, 600, 300)
	assert.Len(t, second, len(first), "old APP0 must be dropped")
	x, y, ok = readJFIFDensity(second)
	require.True(t, ok)
	assert.Equal(t, 600, x)
	assert.Equal(t, 300, y)

	decoded, err := jpeg.Decode(bytes.NewReader(second))
	require.NoError(t, err, "stamped JPEG must stay decodable")
	assert.Equal(t, image.Rect(0, 0, 16, 8), decoded.Bounds())
}

func TestWriteJFIFRejectsGarbage(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "garbage.jpg"))
	require.NoError(t, err)
	defer f.Close()

	err = writeJFIF(f, []byte("nope"), 600, 600)
	assert.ErrorIs(t, err, errNotJPEG)
}

func TestJFIFSegmentClampsDensity(t *testing.T) {
	seg := jfifSegment(0, 1<<20)
	require.Len(t, seg, 14)
	assert.Equal(t, uint16(1), binary.BigEndian.Uint16(seg[8:10]))
	assert.Equal(t, uint16(0xffff), binary.BigEndian.Uint16(seg[10:12]))
}

func TestWithPNGDensityChunk(t *testing.T) {
	// Signature plus a bare IHDR chunk.
	data := append([]byte{}, pngSignature...)
	data = binary.BigEndian.AppendUint32(data, 13)
	data = append(data, 'I', 'H', 'D', 'R')
	data = append(data, make([]byte, 13)...)
	data = binary.BigEndian.AppendUint32(data, 0)

	out, err := withPNGDensity(data, 600, 600)
	require.NoError(t, err)
	require.Len(t, out, len(data)+21)

	x, y, ok := readPNGDensity(out)
	require.True(t, ok)
	assert.Equal(t, uint32(23622), x)
	assert.Equal(t, uint32(23622), y)

	chunk := out[33:54]
	want := crc32.ChecksumIEEE(chunk[4:17])
	assert.Equal(t, want, binary.BigEndian.Uint32(chunk[17:21]))

	_, err = withPNGDensity([]byte("short"), 600, 600)
	assert.ErrorIs(t, err, errNotPNG)
}
