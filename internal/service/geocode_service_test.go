package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecomove/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeConsultaAlProveedor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "Parque Central, Bogotá", r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"), "Nominatim exige User-Agent")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"4.6097","lon":"-74.0817","display_name":"Parque Central, Bogotá"}]`))
	}))
	defer srv.Close()

	svc := service.NewGeocodeService(srv.URL, 2*time.Second)
	results, err := svc.Geocode(context.Background(), "Parque Central, Bogotá")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "4.6097", results[0].Lat)
	assert.Equal(t, "-74.0817", results[0].Lon)
	assert.Equal(t, "Parque Central, Bogotá", results[0].DisplayName)
}

func TestGeocodeSinResultados(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	svc := service.NewGeocodeService(srv.URL, 2*time.Second)
	results, err := svc.Geocode(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGeocodeErrores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := service.NewGeocodeService(srv.URL, 2*time.Second)

	_, err := svc.Geocode(context.Background(), "Parque Central")
	assert.Error(t, err, "un status no-200 se propaga como error")

	_, err = svc.Geocode(context.Background(), "")
	assert.Error(t, err, "dirección vacía se rechaza antes de llamar")
}
