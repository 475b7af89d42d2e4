package webhook

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

	"github.com/uezdny/konditer/internal/domain"
)

// Gateway delivers finalized custom orders to the bakery backend: an
// optional sketch upload first, then the order payload itself. It is the
// only place in the system where a failure reaches the customer.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewGateway(baseURL string) *Gateway {
	return &Gateway{baseURL: baseURL, httpClient: &http.Client{Timeout: 10 * time.Second}}
}

type sketchResp struct {
	URL string `json:"url"`
}

func (g *Gateway) Submit(ctx context.Context, order *domain.CustomOrder) (string, error) {
	if g.baseURL == "" {
		return "", errors.New("order endpoint not configured (ORDER_ENDPOINT)")
	}
	if order == nil {
		return "", errors.New("nil order")
	}

	sketchURL := ""
	if s := order.Config.Sketch; s != nil && len(s.Data) > 0 {
		u, err := g.uploadSketch(ctx, s)
		if err != nil {
			return "", err
		}
		sketchURL = u
	}

	payload := struct {
		domain.CustomOrder
		SketchURL string `json:"sketchUrl,omitempty"`
	}{CustomOrder: *order, SketchURL: sketchURL}

	buf, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/orders/custom", bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("order submission failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("order submission status %d: %s", res.StatusCode, string(body))
	}
	return sketchURL, nil
}

func (g *Gateway) uploadSketch(ctx context.Context, s *domain.Sketch) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	name := s.Filename
	if name == "" {
		name = "sketch"
	}
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(s.Data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/builder/sketch", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sketch upload failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("sketch upload status %d: %s", res.StatusCode, string(b))
	}

	var sr sketchResp
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return "", err
	}
	return sr.URL, nil
}
