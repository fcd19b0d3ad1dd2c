package validation

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/fedipost-dev/fedipost/shared/domain"
)

// ProbeFiles turns local file paths into pending attachments, detecting each
// file's MIME type and, for images, its dimensions. Every file must carry a
// MIME type the instance supports.
func ProbeFiles(paths []string, supportedMimeTypes []string) ([]domain.Attachment, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	allowed := BuildAllowedMimeMap(supportedMimeTypes)

	var attachments []domain.Attachment
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", p, err)
		}

		mimeType, err := DetectMimeType(p)
		if err != nil {
			return nil, err
		}
		if !allowed[mimeType] {
			return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, filepath.Base(p))
		}

		width, height := ExtractImageDimensions(p, mimeType)

		attachments = append(attachments, domain.Attachment{
			LocalPath:   p,
			MimeType:    mimeType,
			ByteSize:    info.Size(),
			ImageWidth:  width,
			ImageHeight: height,
		})
	}

	return attachments, nil
}

func BuildAllowedMimeMap(mimeTypes []string) map[string]bool {
	allowed := make(map[string]bool, len(mimeTypes))
	for _, m := range mimeTypes {
		allowed[m] = true
	}
	return allowed
}

func DetectMimeType(path string) (string, error) {
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		return "", fmt.Errorf("%w for file: %s", ErrUnknownMimeType, filepath.Base(path))
	}
	// TypeByExtension may append parameters, e.g. "text/plain; charset=utf-8"
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType, nil
}

func ExtractImageDimensions(path, mimeType string) (*int, *int) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil
	}
	defer f.Close()

	img, _, err := image.DecodeConfig(f)
	if err != nil {
		// Not being able to decode is not fatal; the server re-validates.
		return nil, nil
	}

	width, height := img.Width, img.Height
	return &width, &height
}
