package imaging

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/garyhouston/jpegsegs"
)

var (
	errNotJPEG = errors.New("data is not a JPEG stream")
	errNotPNG  = errors.New("data is not a PNG stream")
)

var (
	jpegSOI      = []byte{0xff, 0xd8}
	jfifID       = []byte("JFIF\x00")
	pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
)

// jfifSegment is the APP0 payload declaring dpiX x dpiY dots per inch.
func jfifSegment(dpiX, dpiY int) []byte {
	seg := make([]byte, 0, 14)
	seg = append(seg, jfifID...)
	seg = append(seg, 0x01, 0x01) // version 1.01
	seg = append(seg, 0x01)       // units: dots per inch
	seg = binary.BigEndian.AppendUint16(seg, uint16(clampDensity(dpiX)))
	seg = binary.BigEndian.AppendUint16(seg, uint16(clampDensity(dpiY)))
	return append(seg, 0x00, 0x00) // no thumbnail
}

// writeJFIF copies the JPEG stream in data to w with a JFIF APP0 segment
// directly after SOI. Any JFIF APP0 already in the stream is dropped; all
// other segments and the entropy-coded data are copied unchanged.
func writeJFIF(w io.WriteSeeker, data []byte, dpiX, dpiY int) error {
	if !bytes.HasPrefix(data, jpegSOI) {
		return errNotJPEG
	}
	scanner, err := jpegsegs.NewScanner(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", errNotJPEG, err)
	}
	dumper, err := jpegsegs.NewDumper(w)
	if err != nil {
		return err
	}
	if err := dumper.Dump(jpegsegs.APP0, jfifSegment(dpiX, dpiY)); err != nil {
		return err
	}

	for {
		marker, buf, err := scanner.Scan()
		if err != nil {
			return fmt.Errorf("failed to read JPEG segment: %w", err)
		}
		if marker == jpegsegs.APP0 && bytes.HasPrefix(buf, jfifID) {
			continue
		}
		if err := dumper.Dump(marker, buf); err != nil {
			return err
		}
		switch marker {
		case jpegsegs.SOS:
			return dumper.Copy(scanner)
		case jpegsegs.EOI:
			return nil
		}
	}
}

// writePNG writes data to w with a pHYs chunk carrying the density.
func writePNG(w io.WriteSeeker, data []byte, dpiX, dpiY int) error {
	out, err := withPNGDensity(data, dpiX, dpiY)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func clampDensity(dpi int) int {
	if dpi < 1 {
		return 1
	}
	if dpi > math.MaxUint16 {
		return math.MaxUint16
	}
	return dpi
}

// withPNGDensity inserts a pHYs chunk after IHDR. The density is stored in
// pixels per metre.
func withPNGDensity(data []byte, dpiX, dpiY int) ([]byte, error) {
	if len(data) < 33 || !bytes.Equal(data[:8], pngSignature) || string(data[12:16]) != "IHDR" {
		return nil, errNotPNG
	}
	ihdrLen := int(binary.BigEndian.Uint32(data[8:12]))
	insertAt := 8 + 12 + ihdrLen
	if insertAt > len(data) {
		return nil, errNotPNG
	}

	payload := make([]byte, 9)
	binary.BigEndian.PutUint32(payload[0:4], dpiToPPM(dpiX))
	binary.BigEndian.PutUint32(payload[4:8], dpiToPPM(dpiY))
	payload[8] = 1 // unit: metre

	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(payload)))
	chunk = append(chunk, 'p', 'H', 'Y', 's')
	chunk = append(chunk, payload...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:insertAt]...)
	out = append(out, chunk...)
	out = append(out, data[insertAt:]...)
	return out, nil
}

func dpiToPPM(dpi int) uint32 {
	if dpi < 1 {
		dpi = 1
	}
	return uint32(math.Round(float64(dpi) / 0.0254))
}
