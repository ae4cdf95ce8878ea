package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GeocodeService is the client for the third-party IP geolocation API
type GeocodeService struct {
	baseURL string
	client  *http.Client
}

// NewGeocodeService creates a new geocode client
func NewGeocodeService(baseURL string) *GeocodeService {
	return &GeocodeService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// AddressResult represents an IP-derived address
type AddressResult struct {
	Query       string  `json:"query"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Region      string  `json:"regionName"`
	City        string  `json:"city"`
	Zip         string  `json:"zip"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	ISP         string  `json:"isp"`
}

// geocodeResponse is the raw upstream payload
type geocodeResponse struct {
	AddressResult
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AddressFromIP resolves an IP address to a postal-style address via the
// geolocation API. The failure surfaces immediately; there is no retry.
func (s *GeocodeService) AddressFromIP(ctx context.Context, ip string) (*AddressResult, error) {
	url := fmt.Sprintf("%s/json/%s?fields=status,message,country,countryCode,regionName,city,zip,lat,lon,isp,query", s.baseURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode error: %s", string(body))
	}

	var parsed geocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	if parsed.Status != "success" {
		return nil, fmt.Errorf("geocode lookup failed: %s", parsed.Message)
	}

	result := parsed.AddressResult
	return &result, nil
}
