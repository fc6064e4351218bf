// Package cloudinary uploads product photos through the unsigned
// upload preset and hands back a stable public URL.
package cloudinary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// MaxImageBytes caps uploads at 2MB.
const MaxImageBytes = 2 << 20

var ErrTooLarge = errors.New("image exceeds 2MB limit")

type Uploader struct {
	http   *resty.Client
	cloud  string
	preset string
}

func New(cloud, preset string) *Uploader {
	return &Uploader{
		http: resty.New().
			SetBaseURL("https://api.cloudinary.com").
			SetTimeout(30 * time.Second),
		cloud:  cloud,
		preset: preset,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload sends the image bytes and returns the hosted URL. Failures
// are advisory for callers: the draft row's image simply stays unset.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) > MaxImageBytes {
		return "", ErrTooLarge
	}

	var out uploadResponse
	resp, err := u.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"upload_preset": u.preset,
			"folder":        "nhanban/products",
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/v1_1/%s/image/upload", u.cloud))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("cloudinary: status %d", resp.StatusCode())
	}
	if out.SecureURL == "" {
		return "", errors.New("cloudinary: empty secure_url")
	}
	return out.SecureURL, nil
}
