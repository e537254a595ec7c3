package utils_test

import (
	"testing"

	"ecomove/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTransportTipo(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"BICICLETA", "BICICLETA", false},
		{"bicicleta", "BICICLETA", false},
		{"  Patineta ", "PATINETA", false},
		{"scooter", "SCOOTER", false},
		{"", "", true},
		{"monopatin", "", true},
	}
	for _, tc := range tests {
		got, err := utils.NormalizeTransportTipo(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestValidTransportEstado(t *testing.T) {
	assert.True(t, utils.ValidTransportEstado("DISPONIBLE"))
	assert.True(t, utils.ValidTransportEstado("FUERA_DE_SERVICIO"))
	assert.False(t, utils.ValidTransportEstado("ROTO"))
	assert.False(t, utils.ValidTransportEstado(""))
}
