package services

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
)

// BackgroundRemover strips the background from a product photo.
type BackgroundRemover interface {
	RemoveBackground(ctx context.Context, image []byte) ([]byte, error)
}

// RemoveBgService calls the remove.bg HTTP API.
type RemoveBgService struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

var ErrRemoveBgNotConfigured = errors.New("remove.bg api key not configured")

func NewRemoveBgService(apiKey, endpoint string) *RemoveBgService {
	return &RemoveBgService{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type removeBgError struct {
	Errors []struct {
		Title string `json:"title"`
		Code  string `json:"code"`
	} `json:"errors"`
}

// RemoveBackground uploads the image and returns the PNG with a
// transparent background.
func (s *RemoveBgService) RemoveBackground(ctx context.Context, image []byte) ([]byte, error) {
	if s.apiKey == "" {
		return nil, ErrRemoveBgNotConfigured
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image_file", "image")
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	_ = writer.WriteField("size", "auto")
	_ = writer.WriteField("format", "png")
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remove.bg request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read remove.bg response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr removeBgError
		if json.Unmarshal(data, &apiErr) == nil && len(apiErr.Errors) > 0 {
			return nil, fmt.Errorf("remove.bg returned %d: %s", resp.StatusCode, apiErr.Errors[0].Title)
		}
		return nil, fmt.Errorf("remove.bg returned %d", resp.StatusCode)
	}

	return data, nil
}
