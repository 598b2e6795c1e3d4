// Package lifecycle calcula edad, etapa de vida y próxima vacuna a partir de la
// fecha de nacimiento. Todas las funciones reciben "now" explícito.
package lifecycle

import (
	"math"
	"strings"
	"time"

	"cat-lifecycle/internal/domain/healthlogs"
	"cat-lifecycle/internal/platform/civil"
)

type Stage string

const (
	StageKitten Stage = "KITTEN"
	StageAdult  Stage = "ADULT"
	StageSenior Stage = "SENIOR"
)

// SeniorYears es la edad a partir de la cual un gato es SENIOR.
const SeniorYears = 7

// Age es la diferencia de calendario entre nacimiento y hoy.
type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

func (a Age) TotalMonths() int { return a.Years*12 + a.Months }

// AgeDetails resta calendarios (no días/30). Si el día del mes actual es anterior
// al de nacimiento, el mes en curso no cuenta.
func AgeDetails(birth civil.Date, now time.Time) Age {
	today := civil.Of(now)

	years := today.Year - birth.Year
	months := int(today.Month) - int(birth.Month)

	if months < 0 || (months == 0 && today.Day < birth.Day) {
		years--
		months += 12
	}
	if today.Day < birth.Day {
		months--
	}
	if months < 0 {
		months += 12
	}

	return Age{Years: years, Months: months}
}

// StageOf: KITTEN con menos de 12 meses, SENIOR desde los 7 años, si no ADULT.
func StageOf(birth civil.Date, now time.Time) Stage {
	age := AgeDetails(birth, now)
	switch {
	case age.TotalMonths() < 12:
		return StageKitten
	case age.Years >= SeniorYears:
		return StageSenior
	default:
		return StageAdult
	}
}

// Dose es una dosis del esquema básico de vacunación.
type Dose struct {
	Title string `json:"title"`
	Weeks int    `json:"weeks"`
}

// Los títulos son parte del contrato: se buscan literalmente en las notas de HOSPITAL.
var schedule = []Dose{
	{Title: "종합백신 1차", Weeks: 8},
	{Title: "종합백신 2차", Weeks: 12},
	{Title: "종합백신 3차", Weeks: 16},
}

// Schedule devuelve el esquema fijo (copia).
func Schedule() []Dose {
	out := make([]Dose, len(schedule))
	copy(out, schedule)
	return out
}

// VaccineDue es la próxima dosis pendiente.
type VaccineDue struct {
	Title   string     `json:"title"`
	DueDate civil.Date `json:"due_date"`
	DDay    int        `json:"d_day"` // >0 futuro, 0 hoy, <0 atrasada
}

// NextVaccineDue devuelve la primera dosis sin registrar o nil si las tres están hechas.
// Una dosis está hecha si alguna nota de un registro HOSPITAL contiene su título.
func NextVaccineDue(birth civil.Date, logs []healthlogs.Entry, now time.Time) *VaccineDue {
	for _, dose := range schedule {
		if doseLogged(dose.Title, logs) {
			continue
		}
		due := birth.AddDays(dose.Weeks * 7)
		return &VaccineDue{
			Title:   dose.Title,
			DueDate: due,
			DDay:    ceilDays(due.In(now.Location()).Sub(now)),
		}
	}
	return nil
}

func doseLogged(title string, logs []healthlogs.Entry) bool {
	for _, l := range logs {
		if l.Category == healthlogs.CategoryHospital && strings.Contains(l.Note, title) {
			return true
		}
	}
	return false
}

// DDay cuenta días desde el inicio de hoy hasta la fecha (0 = hoy).
func DDay(d civil.Date, now time.Time) int {
	today := civil.Of(now).In(now.Location())
	return ceilDays(d.In(now.Location()).Sub(today))
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}
