package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

var imageMIME = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// imageType returns the extension (without dot, lower case) and the MIME
// type of an image path. Unknown extensions are sent as JPEG.
func imageType(path string) (ext, mime string) {
	ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		ext = "jpg"
	}
	mime, ok := imageMIME[ext]
	if !ok {
		mime = "image/jpeg"
	}
	return ext, mime
}

type diaryData struct {
	FolderID   int64    `json:"folderId"`
	Date       string   `json:"date"`
	Visibility string   `json:"visibility"`
	Emotions   []string `json:"emotions"`
}

// encodeDiaryUpload builds the multipart body of a diary create: one
// "images" part per file, named image_{i}.{ext}, followed by a "data" part
// with the JSON metadata.
func encodeDiaryUpload(r CreateDiaryRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for i, path := range r.Images {
		if err := writeImagePart(w, i, path); err != nil {
			return nil, "", err
		}
	}

	emotions := r.Emotions
	if emotions == nil {
		emotions = []string{}
	}
	meta, err := json.Marshal(diaryData{
		FolderID:   r.FolderID,
		Date:       r.Date,
		Visibility: r.Visibility.Wire(),
		Emotions:   emotions,
	})
	if err != nil {
		return nil, "", err
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="data"`)
	h.Set("Content-Type", "application/json")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(meta); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeImagePart(w *multipart.Writer, i int, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	ext, mime := imageType(path)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="image_%d.%s"`, i, ext))
	h.Set("Content-Type", mime)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy image %s: %w", path, err)
	}
	return nil
}
