package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/nfnt/resize"
	"golang.org/x/exp/slices"
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeGIF  = "image/gif"
	MimeWEBP = "image/webp"
)

var AllowedImageTypes = []string{MimeJPEG, MimePNG, MimeGIF, MimeWEBP}

type Image struct {
	Filename string
	Mime     string
	Data     []byte
}

// ValidateImage checks the declared type and size of an upload.
func ValidateImage(mime string, size, maxSize int64) error {
	if !slices.Contains(AllowedImageTypes, mime) {
		return errorx.New(errorx.BadRequest, "Unsupported image type %s", mime)
	}

	if size <= 0 {
		return errorx.New(errorx.BadRequest, "Empty image")
	}

	if size > maxSize {
		return errorx.New(errorx.BadRequest, "Image exceeds the limit of %d bytes", maxSize)
	}

	return nil
}

// SanitizeFilename keeps the base name with only letters, digits, dot, dash
// and underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	result := strings.Trim(b.String(), ".")
	if result == "" {
		return "file"
	}

	return result
}

// ImageKey builds the object key {entityKind}/{entityID}/{timestamp}_{filename}.
func ImageKey(entityKind, entityID string, now time.Time, filename string) string {
	return fmt.Sprintf("%s/%s/%d_%s", entityKind, entityID, now.UnixMilli(), SanitizeFilename(filename))
}

// ReadImage reads and validates the multipart file at field of the current
// request. Nothing is read from the body part when its declared type or size
// is invalid.
func ReadImage(ctx context.Context, field string) (*Image, error) {
	req := xcontext.HTTPRequest(ctx)
	maxSize := xcontext.Configs(ctx).File.MaxSize
	if req == nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	if err := req.ParseMultipartForm(maxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(field)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Error retrieving the file")
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	if err := ValidateImage(mime, header.Size, maxSize); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read image: %v", err)
		return nil, errorx.Unknown
	}

	if int64(len(data)) > maxSize {
		return nil, errorx.New(errorx.BadRequest, "Image exceeds the limit of %d bytes", maxSize)
	}

	return &Image{Filename: header.Filename, Mime: mime, Data: data}, nil
}

// ResizeImage scales img to a size x size square. Webp images are returned
// unchanged because there is no encoder for them.
func ResizeImage(img *Image, size int) (*Image, error) {
	if img.Mime == MimeWEBP {
		return img, nil
	}

	decoded, err := decodeImg(img.Mime, bytes.NewReader(img.Data))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid image data")
	}

	resized := resize.Resize(uint(size), uint(size), decoded, resize.Lanczos2)
	b, err := encodeImg(img.Mime, resized)
	if err != nil {
		return nil, err
	}

	return &Image{Filename: img.Filename, Mime: img.Mime, Data: b}, nil
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case MimeJPEG:
		img, err = jpeg.Decode(data)
	case MimePNG:
		img, err = png.Decode(data)
	case MimeGIF:
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("cannot decode %s", mime)
	}
	return img, err
}

func encodeImg(mime string, img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)

	var err error
	switch mime {
	case MimeJPEG:
		err = jpeg.Encode(buf, img, nil)
	case MimePNG:
		err = png.Encode(buf, img)
	case MimeGIF:
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("cannot encode %s", mime)
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
