package exif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"
)

var errNoExifChunk = errors.New("webp has no EXIF chunk")

// Reader extracts capture timestamps from image bytes that carry an EXIF block.
// JPEG and TIFF carry it inline; WebP stores it in a RIFF "EXIF" chunk.
type Reader struct{}

func (Reader) CapturedAt(data []byte) (time.Time, error) {
	if len(data) == 0 {
		return time.Time{}, errors.New("empty image")
	}

	payload, err := exifPayload(data)
	if err != nil {
		return time.Time{}, err
	}
	x, err := goexif.Decode(bytes.NewReader(payload))
	if err != nil {
		return time.Time{}, err
	}

	if tag, err := x.Get(goexif.DateTimeOriginal); err == nil {
		if str, err := tag.StringVal(); err == nil {
			parsed, err := time.ParseInLocation("2006:01:02 15:04:05", str, time.Local)
			if err == nil {
				return parsed, nil
			}
		}
	}

	if parsed, err := x.DateTime(); err == nil {
		return parsed, nil
	}

	return time.Time{}, errors.New("exif datetime not found")
}

// exifPayload returns the TIFF-structured EXIF data of a WebP container, or data
// unchanged for any other format.
func exifPayload(data []byte) ([]byte, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return data, nil
	}
	for off := 12; off+8 <= len(data); {
		fourCC := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		start := off + 8
		if size < 0 || start+size > len(data) {
			return nil, errors.New("truncated webp chunk " + fourCC)
		}
		if fourCC == "EXIF" {
			// Some encoders keep the JPEG APP1 "Exif\0\0" preamble.
			return bytes.TrimPrefix(data[start:start+size], []byte("Exif\x00\x00")), nil
		}
		off = start + size + size%2
	}
	return nil, errNoExifChunk
}
