// Package clock centraliza la lectura de "hoy" para que ningún cálculo de
// cobranza dependa de time.Now() directamente.
package clock

import "time"

// Clock entrega la hora actual en la zona horaria del negocio.
type Clock interface {
	Now() time.Time
}

// System usa el reloj del sistema convertido a Location.
type System struct {
	Location *time.Location
}

// NewSystem construye el reloj del sistema para la zona indicada (IANA).
// Si la zona no existe en el sistema se usa UTC.
func NewSystem(zone string) System {
	loc, err := time.LoadLocation(zone)
	if err != nil || zone == "" {
		loc = time.UTC
	}
	return System{Location: loc}
}

// Now implementa Clock.
func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

// Fixed devuelve siempre el mismo instante. Pensado para tests.
type Fixed struct {
	T time.Time
}

// Now implementa Clock.
func (f Fixed) Now() time.Time { return f.T }

// Date atajo para construir fechas sin hora en la zona indicada (nil = UTC).
func Date(year int, month time.Month, day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
