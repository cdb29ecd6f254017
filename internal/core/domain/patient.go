package domain

import (
	"github.com/medibook/medibook-booking-gateway/internal/core/jsontypes"
)

type Patient struct {
	ID        int64               `json:"id"`
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Email     string              `json:"email"`
	Phone     string              `json:"phone,omitempty"`
	DNI       string              `json:"dni,omitempty"`
	BirthDate *jsontypes.CivilDate `json:"birthDate,omitempty"`
	Allergies string              `json:"allergies,omitempty"`
	BloodType string              `json:"bloodType,omitempty"`
}

func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
