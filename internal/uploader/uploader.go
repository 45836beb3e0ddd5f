// Package uploader delivers image bytes to the external image host and
// hands back the public URL. Two backends exist; which one runs is a
// config choice, not a caller concern.
package uploader

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// Uploader is the image host collaborator. Upload blocks until the
// host confirms and returns the public URL of the stored asset.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// AssetID derives a stable public id for an uploaded image from its
// human-given title or filename.
func AssetID(name string) string {
	name = strings.TrimSuffix(name, extension(name))
	if id := slug.Make(name); id != "" {
		return id
	}
	return "asset"
}

func extension(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[i:]
	}
	return ""
}

// uploadFailed wraps backend failures with a uniform prefix so
// handlers can log one canonical message.
func uploadFailed(backend string, err error) error {
	return fmt.Errorf("%s 上传失败: %w", backend, err)
}
