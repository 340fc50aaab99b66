package rest

import (
	"encoding/base64"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Recipe and avatar images arrive inline as base64 data URIs. The decoded
// bytes go into the local media root and only the opaque reference is stored
// on the row.

func mediaRoot() string {
	if root := os.Getenv("MEDIA_ROOT"); root != "" {
		return root
	}
	return "media"
}

var imageExtensions = map[string]string{
	"data:image/png;base64,":  ".png",
	"data:image/jpeg;base64,": ".jpg",
	"data:image/gif;base64,":  ".gif",
}

// saveBase64Image decodes a data URI and writes it under <media root>/<subdir>,
// returning the stored reference. A value that is not a data URI is treated as
// an already-stored reference and returned unchanged, which is what lets
// updates keep the previous image.
func saveBase64Image(subdir string, data string) (string, error) {
	if !strings.HasPrefix(data, "data:") {
		return data, nil
	}

	var extension string
	var payload string
	for prefix, ext := range imageExtensions {
		if strings.HasPrefix(data, prefix) {
			extension = ext
			payload = strings.TrimPrefix(data, prefix)
			break
		}
	}
	if extension == "" {
		return "", errors.New("unsupported image encoding")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", errors.Wrap(err, "malformed base64 image payload")
	}

	dir := path.Join(mediaRoot(), subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "fail to create media directory")
	}

	filename := uuid.New().String() + extension
	if err := os.WriteFile(path.Join(dir, filename), raw, 0644); err != nil {
		return "", errors.Wrap(err, "fail to write image")
	}

	return "/" + path.Join("media", subdir, filename), nil
}
