package utils

import (
	"ecomove/internal/db"
	"fmt"
	"strings"
)

// NormalizeTransportTipo valida y normaliza el tipo de transporte.
// PATINETA y SCOOTER son alias históricos del mismo concepto en la flota,
// pero se conservan como tipos separados en los datos.
func NormalizeTransportTipo(tipo string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(tipo))
	switch t {
	case "BICICLETA", "PATINETA", "SCOOTER":
		return t, nil
	case "":
		return "", fmt.Errorf("el tipo de transporte es requerido")
	default:
		return "", fmt.Errorf("tipo de transporte no soportado: %s", tipo)
	}
}

// ValidTransportEstado reporta si el estado pertenece al ciclo de vida del
// transporte.
func ValidTransportEstado(estado string) bool {
	switch estado {
	case db.TransporteDisponible, db.TransporteEnUso, db.TransporteMantenimiento, db.TransporteFueraDeServicio:
		return true
	}
	return false
}
