package store

import (
	"time"

	"cat-lifecycle/internal/domain/accounts"
	"cat-lifecycle/internal/domain/appointments"
	"cat-lifecycle/internal/domain/healthlogs"
	"cat-lifecycle/internal/domain/healthtips"
	"cat-lifecycle/internal/domain/homechecks"
	"cat-lifecycle/internal/domain/lifecycle"
	"cat-lifecycle/internal/domain/medications"
	"cat-lifecycle/internal/domain/pets"
	"cat-lifecycle/internal/domain/report"
	"cat-lifecycle/internal/domain/todos"
)

// CurrentCat devuelve el gato activo o nil.
func (s *Store) CurrentCat() *pets.Cat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := pets.IndexOf(s.state.Cats, s.state.CurrentCatID)
	if i < 0 {
		return nil
	}
	c := s.state.Cats[i]
	return &c
}

// Dashboard es la tarjeta principal del gato activo.
type Dashboard struct {
	Cat               pets.Cat                  `json:"cat"`
	Age               lifecycle.Age             `json:"age"`
	Stage             lifecycle.Stage           `json:"stage"`
	Breed             *pets.Breed               `json:"breed,omitempty"`
	VaccineDue        *lifecycle.VaccineDue     `json:"vaccine_due,omitempty"`
	NextAppointment   *appointments.Appointment `json:"next_appointment,omitempty"`
	AppointmentDDay   *int                      `json:"appointment_d_day,omitempty"`
	ActiveMedications []medications.Medication  `json:"active_medications"`
	HomeCheckSignal   report.Signal             `json:"home_check_signal"`
	WeightSeries      []report.Point            `json:"weight_series"`
	Todos             []todos.Todo              `json:"todos"`
	RecentChecks      []homechecks.Check        `json:"recent_checks"`
}

// Dashboard arma la tarjeta del gato activo para now. nil si no hay gato activo.
func (s *Store) Dashboard(now time.Time) *Dashboard {
	st := s.Snapshot()
	i := pets.IndexOf(st.Cats, st.CurrentCatID)
	if i < 0 {
		return nil
	}
	cat := st.Cats[i]

	d := &Dashboard{
		Cat:               cat,
		Age:               lifecycle.AgeDetails(cat.BirthDate, now),
		Stage:             lifecycle.StageOf(cat.BirthDate, now),
		VaccineDue:        lifecycle.NextVaccineDue(cat.BirthDate, healthlogs.ForCat(st.Logs, cat.ID, healthlogs.CategoryHospital), now),
		ActiveMedications: medications.Active(st.Medications, cat.ID, now),
		HomeCheckSignal:   report.HomeCheckSignal(cat.ID, st.HomeChecks, now),
		WeightSeries:      report.WeightSeries(cat.ID, st.Logs),
		Todos:             make([]todos.Todo, 0),
		RecentChecks:      make([]homechecks.Check, 0),
	}
	if b, ok := pets.LookupBreed(cat.BreedCode); ok {
		d.Breed = &b
	}
	if a := appointments.Upcoming(st.Appointments, cat.ID, now); a != nil {
		d.NextAppointment = a
		dd := lifecycle.DDay(a.Date, now)
		d.AppointmentDDay = &dd
	}
	for _, t := range st.Todos {
		if t.CatID == cat.ID {
			d.Todos = append(d.Todos, t)
		}
	}
	for _, c := range st.HomeChecks {
		if c.CatID == cat.ID {
			d.RecentChecks = append(d.RecentChecks, c)
		}
	}
	return d
}

// Report es la vista del reporte mensual.
type Report struct {
	CatID   string          `json:"cat_id"`
	Monthly report.Monthly  `json:"monthly"`
	Tip     *healthtips.Tip `json:"tip,omitempty"`
}

// Report arma el reporte del mes de now para el gato activo. nil si no hay gato activo.
// El tip del mes rota solo sobre los publicados.
func (s *Store) Report(now time.Time) *Report {
	st := s.Snapshot()
	if pets.IndexOf(st.Cats, st.CurrentCatID) < 0 {
		return nil
	}
	return &Report{
		CatID:   st.CurrentCatID,
		Monthly: report.BuildMonthly(st.CurrentCatID, st.Logs, st.Appointments, now),
		Tip:     report.MonthlyTip(healthtips.Published(st.HealthTips), now),
	}
}

// User devuelve una copia del perfil de la sesión o nil.
func (s *Store) User() *accounts.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}
