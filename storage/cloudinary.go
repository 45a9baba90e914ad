package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary stores document bytes as raw Cloudinary assets. Locators are the
// asset public IDs; delivery URLs are derived from the cloud name.
type Cloudinary struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	folder    string
}

// NewCloudinary builds a store from explicit credentials.
func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	if folder == "" {
		folder = "documents"
	}
	return &Cloudinary{cld: cld, cloudName: cloudName, folder: folder}, nil
}

func (c *Cloudinary) Write(name string, data []byte) (string, error) {
	resp, err := c.cld.Upload.Upload(context.Background(), bytes.NewReader(data), uploader.UploadParams{
		PublicID:     name,
		Folder:       c.folder,
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.PublicID, nil
}

func (c *Cloudinary) Read(locator string) ([]byte, error) {
	resp, err := http.Get(c.deliveryURL(locator))
	if err != nil {
		return nil, fmt.Errorf("cloudinary fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotExist
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloudinary fetch: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Cloudinary) Delete(locator string) error {
	resp, err := c.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID:     locator,
		ResourceType: "raw",
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	// "not found" is fine: the asset being gone is the desired outcome.
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Result)
	}
	return nil
}

func (c *Cloudinary) Exists(locator string) (bool, error) {
	resp, err := http.Head(c.deliveryURL(locator))
	if err != nil {
		return false, fmt.Errorf("cloudinary head: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

// deliveryURL builds the public raw-asset URL, escaping each path segment of
// the public ID without touching the separators.
func (c *Cloudinary) deliveryURL(publicID string) string {
	segments := strings.Split(publicID, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/raw/upload/%s",
		c.cloudName, strings.Join(segments, "/"))
}
