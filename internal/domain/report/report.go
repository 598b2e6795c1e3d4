// Package report arma el resumen mensual y la señal de chequeos en casa del gato activo.
package report

import (
	"time"

	"cat-lifecycle/internal/domain/appointments"
	"cat-lifecycle/internal/domain/healthlogs"
	"cat-lifecycle/internal/domain/healthtips"
	"cat-lifecycle/internal/domain/homechecks"
	"cat-lifecycle/internal/platform/civil"
)

// Monthly es el resumen del mes en curso.
type Monthly struct {
	TotalActivityMinutes float64 `json:"total_activity_minutes"`
	AverageWeight        float64 `json:"average_weight"`
	HospitalVisitCount   int     `json:"hospital_visit_count"`
	LogCount             int     `json:"log_count"`
}

// sameMonth compara solo el mes, sin año: diciembre de este año y del anterior
// caen en el mismo reporte. Lo cubre TestMonthly_IgnoresYear.
func sameMonth(d civil.Date, now time.Time) bool {
	return d.Month == now.Month()
}

// BuildMonthly agrega registros y turnos del gato para el mes de now.
func BuildMonthly(catID string, logs []healthlogs.Entry, appts []appointments.Appointment, now time.Time) Monthly {
	var (
		out         Monthly
		weightSum   float64
		weightCount int
	)

	for _, l := range logs {
		if l.CatID != catID || !sameMonth(l.VisitDate, now) {
			continue
		}
		out.LogCount++

		switch l.Category {
		case healthlogs.CategoryActivity:
			out.TotalActivityMinutes += l.Number()
		case healthlogs.CategoryWeight:
			weightSum += l.Number()
			weightCount++
		}
	}

	if weightCount > 0 {
		out.AverageWeight = weightSum / float64(weightCount)
	}

	for _, a := range appts {
		if a.CatID == catID && sameMonth(a.Date, now) {
			out.HospitalVisitCount++
		}
	}

	return out
}

type Signal string

const (
	SignalNone   Signal = "NONE"
	SignalGreen  Signal = "GREEN"
	SignalYellow Signal = "YELLOW"
	SignalRed    Signal = "RED"
)

// HomeCheckSignal: RED si hay algún DANGER este mes (año incluido), si no YELLOW si hay
// algún WARNING, si no GREEN si hay chequeos, si no NONE. El orden de la lista no importa.
func HomeCheckSignal(catID string, checks []homechecks.Check, now time.Time) Signal {
	var found, warning, danger bool
	for _, c := range checks {
		if c.CatID != catID {
			continue
		}
		if c.CheckDate.Year != now.Year() || c.CheckDate.Month != now.Month() {
			continue
		}
		found = true
		switch c.Result {
		case homechecks.ResultDanger:
			danger = true
		case homechecks.ResultWarning:
			warning = true
		}
	}

	switch {
	case danger:
		return SignalRed
	case warning:
		return SignalYellow
	case found:
		return SignalGreen
	default:
		return SignalNone
	}
}

// Point es un punto del gráfico de peso.
type Point struct {
	Date  civil.Date `json:"date"`
	Value float64    `json:"value"`
}

// WeightSeries devuelve los pesos del gato en orden de fecha ascendente.
func WeightSeries(catID string, logs []healthlogs.Entry) []Point {
	weights := healthlogs.ForCat(logs, catID, healthlogs.CategoryWeight)
	healthlogs.SortByVisitDate(weights)

	out := make([]Point, 0, len(weights))
	for _, l := range weights {
		out = append(out, Point{Date: l.VisitDate, Value: l.Number()})
	}
	return out
}

// MonthlyTip elige el tip del mes rotando por índice de mes (enero = 0).
func MonthlyTip(tips []healthtips.Tip, now time.Time) *healthtips.Tip {
	if len(tips) == 0 {
		return nil
	}
	t := tips[(int(now.Month())-1)%len(tips)]
	return &t
}
