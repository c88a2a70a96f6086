package domain

import (
	"fmt"
	"strings"
	"time"
)

// Period é o intervalo fechado [Start, End] com precisão de dia.
type Period struct {
	Start time.Time
	End   time.Time
}

var periodLayouts = []string{"02/01/2006", "2006-01-02"}

// ParsePeriod valida as datas do formulário (dd/mm/aaaa ou aaaa-mm-dd).
func ParsePeriod(start, end string) (Period, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return Period{}, fmt.Errorf("%w: Por favor, preencha ambas as datas.", ErrInvalidPeriod)
	}

	s, okStart := parseDay(start)
	e, okEnd := parseDay(end)
	if !okStart || !okEnd {
		return Period{}, fmt.Errorf("%w: Datas inválidas. Use o formato dd/mm/aaaa.", ErrInvalidPeriod)
	}
	return NewPeriod(s, e)
}

// NewPeriod normaliza as datas para meia-noite UTC e exige Start <= End.
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: Day(start), End: Day(end)}
	if p.Start.After(p.End) {
		return Period{}, fmt.Errorf("%w: A data inicial não pode ser maior que a final.", ErrInvalidPeriod)
	}
	return p, nil
}

// Contains informa se a data (sem hora) está dentro do intervalo, inclusive nas pontas.
func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Day descarta o horário, mantendo ano, mês e dia do valor informado.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDay(s string) (time.Time, bool) {
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
