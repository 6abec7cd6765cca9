package qrcode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

const (
	DefaultBaseURL = "https://api.qrserver.com/v1/create-qr-code/"

	DisplaySize  = 180
	DownloadSize = 400

	maxImageBytes = 2 << 20
)

// Client talks to a goqr.me compatible QR image endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ImageURL returns the URL of a size x size QR image encoding data
func (c *Client) ImageURL(data string, size int) string {
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%dx%d", size, size))
	q.Set("data", data)
	q.Set("margin", "10")
	return c.baseURL + "?" + q.Encode()
}

func (c *Client) Fetch(ctx context.Context, data string, size int) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ImageURL(data, size), nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch qr code: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch qr code: unexpected status %d", resp.StatusCode)
	}

	img, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read qr code: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(img)
	}
	return img, contentType, nil
}

var _ ports.QRCodeService = (*Client)(nil)
