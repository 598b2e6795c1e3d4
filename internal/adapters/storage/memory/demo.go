package memory

import (
	"context"
	"fmt"
	"time"

	"cat-lifecycle/internal/domain/accounts"
	"cat-lifecycle/internal/domain/appointments"
	"cat-lifecycle/internal/domain/healthtips"
	"cat-lifecycle/internal/domain/medications"
	"cat-lifecycle/internal/domain/pets"
	"cat-lifecycle/internal/platform/civil"
	"cat-lifecycle/internal/ports/auth"
	"cat-lifecycle/internal/ports/persistence"
)

// Ids fijos del fixture demo.
const (
	DemoCatID         = "demo-cat-id"
	DemoAppointmentID = "demo-apt-1"
	DemoMedicationID  = "demo-med-1"
)

type demoCat struct {
	ID string `json:"id"`
	pets.Draft
}

type demoAppointment struct {
	ID string `json:"id"`
	appointments.Draft
}

type demoMedication struct {
	ID string `json:"id"`
	medications.Draft
}

// NewDemoBackend arma el backend del modo demo: cuenta admin BETA, un gato,
// un turno en 3 días, un tratamiento que empieza hoy y los tips incorporados.
// No toca la red.
func NewDemoBackend(now func() time.Time) (*Backend, error) {
	if now == nil {
		now = time.Now
	}
	b := NewBackend(&auth.Identity{ID: accounts.DemoUserID, Email: accounts.DemoEmail}, WithClock(now))
	b.name = "demo"

	ctx := context.Background()
	today := civil.Of(now())

	profile := accounts.Default(accounts.DemoUserID, accounts.DemoEmail)
	profile.IsAdmin = true

	docs := []struct {
		table persistence.Table
		doc   any
	}{
		{persistence.Profiles, profile},
		{persistence.Cats, demoCat{ID: DemoCatID, Draft: pets.Draft{
			UserID:     accounts.DemoUserID,
			Name:       "치즈",
			BirthDate:  civil.MustParse("2023-01-01"),
			BreedCode:  "KSH",
			Gender:     pets.GenderMale,
			IsNeutered: true,
			WeightKg:   4.5,
		}}},
		{persistence.Appointments, demoAppointment{ID: DemoAppointmentID, Draft: appointments.Draft{
			CatID:        DemoCatID,
			Title:        "정기 건강검진",
			Date:         today.AddDays(3),
			Time:         "14:00",
			HospitalName: "튼튼 동물병원",
		}}},
		{persistence.Medications, demoMedication{ID: DemoMedicationID, Draft: medications.Draft{
			CatID:     DemoCatID,
			Name:      "심장사상충 예방약",
			Dosage:    "1알",
			Frequency: "매월 1회",
			StartDate: today,
		}}},
	}
	for _, tip := range healthtips.Seed() {
		docs = append(docs, struct {
			table persistence.Table
			doc   any
		}{persistence.HealthTips, tip})
	}

	for _, d := range docs {
		if _, err := persistence.InsertAs[map[string]any](ctx, b, d.table, d.doc); err != nil {
			return nil, fmt.Errorf("memory: seed demo %s: %w", d.table, err)
		}
	}
	return b, nil
}
