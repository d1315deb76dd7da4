package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"savekeeper/internal/domain"
	appErrors "savekeeper/internal/errors"
)

const DefaultPreviewExtension = "WebP"

var ErrInvalidPreviewName = errors.New("invalid name for preview")

// Thumbnails finds and decodes the preview image stored inside a save directory.
// A save named "<stamp>__<run>" keeps its preview at "<save>/<run>.<ext>".
type Thumbnails struct {
	FS        FileSystem
	Decoder   ImageDecoder
	Metadata  MetadataReader
	Extension string
}

func (t Thumbnails) Resolve(entry domain.SaveEntry) (string, error) {
	base := entry.PreviewBaseName()
	if base == "" {
		return "", appErrors.Wrap(appErrors.InvalidName, "preview", entry.Name, ErrInvalidPreviewName)
	}
	return filepath.Join(entry.Path, base+"."+t.extension()), nil
}

// Load reads and decodes the preview. A missing or undecodable file is NotFound.
func (t Thumbnails) Load(ctx context.Context, entry domain.SaveEntry) (domain.Preview, error) {
	if t.FS == nil || t.Decoder == nil {
		return domain.Preview{}, errors.New("thumbnails require FS and Decoder")
	}
	path, err := t.Resolve(entry)
	if err != nil {
		return domain.Preview{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Preview{}, err
	}

	data, err := t.FS.ReadFile(path)
	if err != nil {
		return domain.Preview{}, appErrors.Wrap(appErrors.NotFound, "preview", path, err)
	}
	img, format, err := t.Decoder.Decode(data)
	if err != nil {
		return domain.Preview{}, appErrors.Wrap(appErrors.NotFound, "preview", path, err)
	}

	preview := domain.Preview{Path: path, Image: img, Format: format}
	if t.Metadata != nil {
		if capturedAt, metaErr := t.Metadata.CapturedAt(data); metaErr == nil {
			preview.CapturedAt = &capturedAt
		}
	}
	return preview, nil
}

func (t Thumbnails) extension() string {
	ext := strings.TrimPrefix(t.Extension, ".")
	if ext == "" {
		return DefaultPreviewExtension
	}
	return ext
}
