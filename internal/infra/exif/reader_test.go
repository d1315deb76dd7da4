package exif

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

// tiffWithDateTime builds a little-endian TIFF whose IFD0 holds a single
// DateTime (0x0132) entry.
func tiffWithDateTime(stamp string) []byte {
	value := append([]byte(stamp), 0)
	buf := []byte("II*\x00")
	buf = binary.LittleEndian.AppendUint32(buf, 8)
	buf = binary.LittleEndian.AppendUint16(buf, 1)
	buf = binary.LittleEndian.AppendUint16(buf, 0x0132)
	buf = binary.LittleEndian.AppendUint16(buf, 2)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(value)))
	buf = binary.LittleEndian.AppendUint32(buf, 26)
	buf = binary.LittleEndian.AppendUint32(buf, 0)
	return append(buf, value...)
}

func riffChunk(fourCC string, payload []byte) []byte {
	chunk := []byte(fourCC)
	chunk = binary.LittleEndian.AppendUint32(chunk, uint32(len(payload)))
	chunk = append(chunk, payload...)
	if len(payload)%2 == 1 {
		chunk = append(chunk, 0)
	}
	return chunk
}

func webp(chunks ...[]byte) []byte {
	var body []byte
	for _, chunk := range chunks {
		body = append(body, chunk...)
	}
	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)+4))
	out = append(out, "WEBP"...)
	return append(out, body...)
}

func TestCapturedAtWithoutExif(t *testing.T) {
	if _, err := (Reader{}).CapturedAt(webp(riffChunk("VP8 ", []byte("pixels")))); err == nil {
		t.Fatalf("expected error for data without exif")
	}
	if _, err := (Reader{}).CapturedAt(nil); err == nil {
		t.Fatalf("expected error for empty data")
	}
}

func TestCapturedAtFromWebPExifChunk(t *testing.T) {
	want := time.Date(2023, 8, 3, 12, 30, 0, 0, time.Local)

	for name, data := range map[string][]byte{
		"bare tiff":     webp(riffChunk("VP8X", make([]byte, 10)), riffChunk("VP8 ", []byte("px!")), riffChunk("EXIF", tiffWithDateTime("2023:08:03 12:30:00"))),
		"exif preamble": webp(riffChunk("EXIF", append([]byte("Exif\x00\x00"), tiffWithDateTime("2023:08:03 12:30:00")...))),
	} {
		got, err := (Reader{}).CapturedAt(data)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func TestCapturedAtFromTiff(t *testing.T) {
	got, err := (Reader{}).CapturedAt(tiffWithDateTime("2021:01:02 03:04:05"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2021, 1, 2, 3, 4, 5, 0, time.Local); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExifPayloadMissingChunk(t *testing.T) {
	if _, err := exifPayload(webp(riffChunk("VP8L", []byte("lossless")))); !errors.Is(err, errNoExifChunk) {
		t.Fatalf("expected missing chunk error, got %v", err)
	}
	if _, err := exifPayload(webp([]byte("EXIF\xff\x00\x00\x00short"))); err == nil {
		t.Fatalf("expected error for truncated chunk")
	}
}
