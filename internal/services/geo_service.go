package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GeoService asks a places API for address suggestions while the
// operator types a camper location. A chosen suggestion is just a
// string; the form stores it as-is.
type GeoService struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewGeoService(baseURL, apiKey string) *GeoService {
	return &GeoService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Enabled reports whether an API key is configured; without one the
// location field degrades to plain text input.
func (s *GeoService) Enabled() bool {
	return s.apiKey != ""
}

type placesResponse struct {
	Predictions []struct {
		Description string `json:"description"`
	} `json:"predictions"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// Suggest returns formatted address strings for the partial input.
func (s *GeoService) Suggest(ctx context.Context, input string) ([]string, error) {
	if input == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("input", input)
	q.Set("types", "(cities)")
	q.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求地点服务失败: %w", err)
	}
	defer resp.Body.Close()

	var parsed placesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("解析地点服务响应失败: %w", err)
	}

	if parsed.Status != "OK" && parsed.Status != "ZERO_RESULTS" {
		if parsed.ErrorMessage != "" {
			return nil, fmt.Errorf("地点服务返回错误: %s", parsed.ErrorMessage)
		}
		return nil, fmt.Errorf("地点服务返回状态 %s", parsed.Status)
	}

	suggestions := make([]string, 0, len(parsed.Predictions))
	for _, p := range parsed.Predictions {
		suggestions = append(suggestions, p.Description)
	}
	return suggestions, nil
}
