// Package calendar define la aritmética de calendario que necesita el motor de
// agregación, sin atarlo a ninguna librería de fechas.
package calendar

import "time"

// Calendar operaciones de calendario en una zona horaria fija.
// DayKey y MonthKey deben evaluar la fecha en esa zona (día/mes "local").
type Calendar interface {
	// StartOfAnchoredWeek inicio (00:00) de la semana que contiene t, empezando en anchor.
	StartOfAnchoredWeek(t time.Time, anchor time.Weekday) time.Time
	// StartOfYear 1 de enero a las 00:00 del año de t.
	StartOfYear(t time.Time) time.Time
	// DayKey clave del día calendario de t, formato 2006-01-02.
	DayKey(t time.Time) string
	// MonthKey clave del mes calendario de t, formato 2006-01.
	MonthKey(t time.Time) string
}

// Clock fuente de "ahora"; se inyecta para que las agregaciones sean deterministas.
type Clock func() time.Time
