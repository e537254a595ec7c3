package entities

// GeocodeResult replica el formato de Nominatim que espera el mapa del
// dashboard: lat/lon como strings.
type GeocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
