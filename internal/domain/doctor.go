package domain

import "time"

type Doctor struct {
	ID             int32  `json:"id"`
	Name           string `json:"name"`
	ContactNo      string `json:"contactNo"`
	Specialization string `json:"specialization"`
	IsAvailable    bool   `json:"isAvailable"`
}

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// ReleasesDoctor reports whether moving to s frees the doctor again.
func (s AppointmentStatus) ReleasesDoctor() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

type Appointment struct {
	ID              int32             `json:"id"`
	UserID          int32             `json:"userId"`
	Username        string            `json:"username"`
	DoctorID        int32             `json:"doctorId"`
	DoctorName      string            `json:"doctorName,omitempty"`
	Disease         string            `json:"disease"`
	AppointmentDate time.Time         `json:"appointmentDate"`
	Status          AppointmentStatus `json:"status"`
}
