package helper

import (
	"cake_admin/config"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	cld     *cloudinary.Cloudinary
	cldErr  error
	cldOnce sync.Once
)

func Cloudinary() (*cloudinary.Cloudinary, error) {
	cldOnce.Do(func() {
		cld, cldErr = cloudinary.NewFromParams(
			config.Config("CLOUDINARY_CLOUD_NAME"),
			config.Config("CLOUDINARY_API_KEY"),
			config.Config("CLOUDINARY_API_SECRET"),
		)
	})
	return cld, cldErr
}

type UploadedImage struct {
	URL      string
	PublicID string
}

// UploadImage tải ảnh lên thư mục folder trên Cloudinary
func UploadImage(ctx context.Context, folder, publicID string, file io.Reader) (UploadedImage, error) {
	c, err := Cloudinary()
	if err != nil {
		return UploadedImage{}, fmt.Errorf("cloudinary init: %w", err)
	}
	res, err := c.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return UploadedImage{}, fmt.Errorf("không thể tải ảnh lên Cloudinary: %w", err)
	}
	return UploadedImage{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func DestroyImage(ctx context.Context, publicID string) error {
	c, err := Cloudinary()
	if err != nil {
		return err
	}
	_, err = c.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// ExtractPublicID lấy public id từ URL ảnh Cloudinary:
// https://res.cloudinary.com/<cloud-name>/image/upload/<folder>/<public-id>.<format>
func ExtractPublicID(url string) string {
	if !strings.Contains(url, "res.cloudinary.com") {
		return ""
	}
	parts := strings.Split(url, "/")
	n := len(parts)
	if n < 4 {
		return ""
	}
	publicID := strings.Join(parts[n-2:n], "/")
	return strings.TrimSuffix(publicID, filepath.Ext(publicID))
}
