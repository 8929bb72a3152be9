// Package calendar implementa domain/calendar sobre github.com/jinzhu/now.
package calendar

import (
	"time"

	"github.com/jinzhu/now"

	domaincal "github.com/jhoicas/sales-insights/internal/domain/calendar"
)

var _ domaincal.Calendar = (*NowCalendar)(nil)

// NowCalendar calendario en una zona horaria fija (la del back-office).
type NowCalendar struct {
	loc *time.Location
}

// New construye el calendario; loc nil equivale a time.Local.
func New(loc *time.Location) *NowCalendar {
	if loc == nil {
		loc = time.Local
	}
	return &NowCalendar{loc: loc}
}

// Location zona horaria del calendario.
func (c *NowCalendar) Location() *time.Location { return c.loc }

func (c *NowCalendar) with(t time.Time, weekStart time.Weekday) *now.Now {
	cfg := &now.Config{WeekStartDay: weekStart, TimeLocation: c.loc}
	return cfg.With(t.In(c.loc))
}

// StartOfAnchoredWeek retrocede (dow - anchor + 7) % 7 días desde el inicio del día de t.
func (c *NowCalendar) StartOfAnchoredWeek(t time.Time, anchor time.Weekday) time.Time {
	return c.with(t, anchor).BeginningOfWeek()
}

// StartOfYear 1 de enero 00:00 en la zona del calendario.
func (c *NowCalendar) StartOfYear(t time.Time) time.Time {
	return c.with(t, time.Sunday).BeginningOfYear()
}

// DayKey día calendario local de t.
func (c *NowCalendar) DayKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

// MonthKey mes calendario local de t.
func (c *NowCalendar) MonthKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01")
}

// LoadLocation resuelve el nombre IANA de la configuración; vacío equivale a time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
