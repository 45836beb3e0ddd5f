package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"roamcms/internal/config"
)

// CloudinaryUploader posts images to Cloudinary's unsigned upload
// endpoint as a single multipart request.
type CloudinaryUploader struct {
	client       *http.Client
	uploadURL    string
	uploadPreset string
	folder       string
}

func NewCloudinaryUploader(cfg config.CloudinaryConfig) *CloudinaryUploader {
	return &CloudinaryUploader{
		client:       &http.Client{Timeout: 60 * time.Second},
		uploadURL:    fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cfg.CloudName),
		uploadPreset: cfg.UploadPreset,
		folder:       cfg.Folder,
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *CloudinaryUploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("upload_preset", u.uploadPreset); err != nil {
		return "", uploadFailed("cloudinary", err)
	}
	if u.folder != "" {
		if err := w.WriteField("folder", u.folder); err != nil {
			return "", uploadFailed("cloudinary", err)
		}
	}
	if err := w.WriteField("public_id", AssetID(name)); err != nil {
		return "", uploadFailed("cloudinary", err)
	}

	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", uploadFailed("cloudinary", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", uploadFailed("cloudinary", err)
	}
	if err := w.Close(); err != nil {
		return "", uploadFailed("cloudinary", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", uploadFailed("cloudinary", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", uploadFailed("cloudinary", err)
	}
	defer resp.Body.Close()

	var parsed cloudinaryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return "", uploadFailed("cloudinary", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error.Message != "" {
			return "", uploadFailed("cloudinary", errors.New(parsed.Error.Message))
		}
		return "", uploadFailed("cloudinary", fmt.Errorf("status %d", resp.StatusCode))
	}
	if parsed.SecureURL == "" {
		return "", uploadFailed("cloudinary", errors.New("响应中没有 secure_url"))
	}

	return parsed.SecureURL, nil
}
