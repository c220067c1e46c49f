package models

import (
	"agendaclin-service/internal/pkg/dto/responses"
)

type Clinic struct {
	ID       string `bson:"_id,omitempty"`
	Name     string `bson:"name"`
	Address  string `bson:"address,omitempty"`
	Phone    string `bson:"phone,omitempty"`
	Timezone string `bson:"timezone,omitempty"`
	Active   bool   `bson:"active"`
}

func (c Clinic) ConvertIntoResponse() responses.Clinic {
	return responses.Clinic{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
	}
}

type Professional struct {
	ID        string `bson:"_id,omitempty"`
	ClinicID  string `bson:"clinic_id"`
	Name      string `bson:"name"`
	Specialty string `bson:"specialty,omitempty"`
	Active    bool   `bson:"active"`
}

func (p Professional) ConvertIntoResponse() responses.Professional {
	return responses.Professional{
		ID:        p.ID,
		ClinicID:  p.ClinicID,
		Name:      p.Name,
		Specialty: p.Specialty,
	}
}
