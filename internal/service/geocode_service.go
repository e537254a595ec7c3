package service

import (
	"context"
	"ecomove/internal/entities"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultGeocodeBaseURL = "https://nominatim.openstreetmap.org"

// GeocodeService resuelve direcciones contra un proveedor compatible con
// Nominatim y le pasa el resultado crudo al mapa del dashboard.
type GeocodeService struct {
	baseURL    string
	httpClient *http.Client
}

func NewGeocodeService(baseURL string, timeout time.Duration) *GeocodeService {
	if baseURL == "" {
		baseURL = defaultGeocodeBaseURL
	}
	return &GeocodeService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *GeocodeService) Geocode(ctx context.Context, address string) ([]entities.GeocodeResult, error) {
	if address == "" {
		return nil, fmt.Errorf("address es requerido")
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", s.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creando request de geocoding: %w", err)
	}
	// Nominatim exige identificar la aplicación.
	req.Header.Set("User-Agent", "ecomove-admin/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error consultando geocoder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocoder respondió %d: %s", resp.StatusCode, string(body))
	}

	var results []entities.GeocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("error decodificando respuesta del geocoder: %w", err)
	}
	return results, nil
}
