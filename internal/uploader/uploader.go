package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/storehubhq/storehub-backend/internal/config"
)

// Asset is one accepted upload as reported by the image host.
type Asset struct {
	URL      string
	PublicID string
	Metadata map[string]interface{}
}

// Client talks to the external image host. Services depend on the
// interface so tests can swap in a fake.
type Client interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*Asset, error)
	Destroy(ctx context.Context, publicID string) error
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	folder     string
	httpClient *http.Client
}

func NewHTTPClient(cfg *config.Config) *HTTPClient {
	return &HTTPClient{
		baseURL:    cfg.UploadURL,
		apiKey:     cfg.UploadAPIKey,
		folder:     cfg.UploadFolder,
		httpClient: &http.Client{Timeout: cfg.UploadTimeout},
	}
}

type uploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}

func (c *HTTPClient) Upload(ctx context.Context, filename string, r io.Reader) (*Asset, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to buffer upload: %w", err)
	}
	if err := writer.WriteField("folder", c.folder); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image host returned status %d", resp.StatusCode)
	}

	var result uploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.SecureURL == "" || result.PublicID == "" {
		return nil, fmt.Errorf("image host returned an incomplete result")
	}

	return &Asset{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Metadata: map[string]interface{}{
			"width":  result.Width,
			"height": result.Height,
			"format": result.Format,
			"bytes":  result.Bytes,
		},
	}, nil
}

func (c *HTTPClient) Destroy(ctx context.Context, publicID string) error {
	form := url.Values{"public_id": {publicID}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/destroy",
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build destroy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("destroy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("image host returned status %d", resp.StatusCode)
	}
	return nil
}
