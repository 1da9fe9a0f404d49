package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary keeps files as raw assets in a Cloudinary folder. The stored
// name is used as the public ID so lookups need no extra index.
type Cloudinary struct {
	cld          *cloudinary.Cloudinary
	uploadFolder string
	client       *http.Client
}

// NewCloudinary creates a new Cloudinary-backed store
func NewCloudinary(cloudName, apiKey, apiSecret, uploadFolder string) (*Cloudinary, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are required")
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	if uploadFolder == "" {
		uploadFolder = "goalpath"
	}

	return &Cloudinary{
		cld:          cld,
		uploadFolder: strings.Trim(uploadFolder, "/"),
		client:       http.DefaultClient,
	}, nil
}

func (s *Cloudinary) publicID(name string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	return path.Join(s.uploadFolder, clean), nil
}

func (s *Cloudinary) Save(ctx context.Context, name string, r io.Reader) error {
	publicID, err := s.publicID(name)
	if err != nil {
		return err
	}

	overwrite := false
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "raw",
		Overwrite:    &overwrite,
	})
	if err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}
	// Rejected uploads come back as a result with an error message, not as err.
	if res.Error.Message != "" {
		return fmt.Errorf("failed to upload image: %s", res.Error.Message)
	}
	return nil
}

func (s *Cloudinary) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	publicID, err := s.publicID(name)
	if err != nil {
		return nil, ErrNotExist
	}

	asset, err := s.cld.File(publicID)
	if err != nil {
		return nil, fmt.Errorf("failed to build asset: %w", err)
	}
	url, err := asset.String()
	if err != nil {
		return nil, fmt.Errorf("failed to build asset url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotExist
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch asset: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *Cloudinary) Remove(ctx context.Context, name string) error {
	publicID, err := s.publicID(name)
	if err != nil {
		return err
	}

	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("failed to delete asset: %s", res.Error.Message)
	}
	// A missing asset comes back as result "not found" and counts as removed.
	return nil
}
