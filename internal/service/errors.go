package service

import "errors"

// Errores de negocio que los handlers traducen a códigos HTTP. Se validan
// contra datos ya cargados antes de disparar cualquier mutación.
var (
	ErrTransporteNoEnEstacion = errors.New("el transporte no se encuentra en la estación de origen")
	ErrEstacionSinCapacidad   = errors.New("la estación de origen no tiene capacidad disponible")
	ErrTransporteNoDisponible = errors.New("el transporte no está disponible")
	ErrPrestamoYaFinalizado   = errors.New("este préstamo ya ha sido finalizado")
	ErrCredencialesInvalidas  = errors.New("credenciales inválidas")
	ErrPagoNoConfirmado       = errors.New("el pago no fue confirmado")
)
