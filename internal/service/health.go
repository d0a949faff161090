package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

// defaultDoctors seeds an empty directory.
var defaultDoctors = []domain.Doctor{
	{Name: "Dr. Ali", ContactNo: "+92321-3747345", Specialization: "Fever"},
	{Name: "Dr. Naqvi", ContactNo: "+92345-2372099", Specialization: "Fever"},
	{Name: "Dr. Ahmed", ContactNo: "+92365-3248593", Specialization: "Headache"},
	{Name: "Dr. Fahad", ContactNo: "+92325-5783239", Specialization: "Headache"},
	{Name: "Dr. Raheel", ContactNo: "+92312-9080901", Specialization: "Malaria"},
	{Name: "Dr. Siddique", ContactNo: "+92318-2849229", Specialization: "Malaria"},
	{Name: "Dr. Jahanzaib", ContactNo: "+92323-4522907", Specialization: "Typhoid"},
	{Name: "Dr. Maheen", ContactNo: "+92345-7264786", Specialization: "Typhoid"},
	{Name: "Dr. Abdullah", ContactNo: "+92335-2873912", Specialization: "Diabetes"},
	{Name: "Dr. Zainab", ContactNo: "+92321-4545534", Specialization: "Diabetes"},
}

type healthService struct {
	txManager  repository.TxManager
	doctorRepo repository.DoctorRepository
	apptRepo   repository.AppointmentRepository
	userRepo   repository.UserRepository
	now        func() time.Time
}

func NewHealthService(
	txManager repository.TxManager,
	doctorRepo repository.DoctorRepository,
	apptRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
) HealthService {
	return &healthService{
		txManager:  txManager,
		doctorRepo: doctorRepo,
		apptRepo:   apptRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

func (s *healthService) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	if len(doctors) > 0 {
		return doctors, nil
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		// Concurrent first requests serialize on the table lock; the loser sees the seeded rows.
		if err := s.doctorRepo.LockTable(ctx); err != nil {
			return err
		}
		n, err := s.doctorRepo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for _, d := range defaultDoctors {
			doctor := d
			doctor.IsAvailable = true
			if err := s.doctorRepo.Create(ctx, &doctor); err != nil {
				return err
			}
		}
		logger.Info("Seeded default doctors", "count", len(defaultDoctors))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed doctors: %w", err)
	}

	doctors, err = s.doctorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// BookAppointment reserves an available doctor. date defaults to now.
func (s *healthService) BookAppointment(ctx context.Context, userID, doctorID int32, disease string, date *time.Time) (*domain.Appointment, *domain.Doctor, error) {
	logger.EnterMethod("healthService.BookAppointment", "userID", userID, "doctorID", doctorID)

	if strings.TrimSpace(disease) == "" {
		return nil, nil, validationError("Disease is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, notFoundError("User not found")
		}
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	var (
		appt   *domain.Appointment
		doctor *domain.Doctor
	)
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		doctor, err = s.doctorRepo.GetByIDForUpdate(ctx, doctorID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return validationError("Doctor not available")
			}
			return fmt.Errorf("failed to load doctor: %w", err)
		}
		if !doctor.IsAvailable {
			return validationError("Doctor not available")
		}

		when := s.now()
		if date != nil && !date.IsZero() {
			when = *date
		}
		appt = &domain.Appointment{
			UserID:          user.ID,
			Username:        user.Username,
			DoctorID:        doctor.ID,
			DoctorName:      doctor.Name,
			Disease:         strings.TrimSpace(disease),
			AppointmentDate: when,
			Status:          domain.AppointmentScheduled,
		}
		if err := s.apptRepo.Create(ctx, appt); err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		if err := s.doctorRepo.SetAvailability(ctx, doctor.ID, false); err != nil {
			return fmt.Errorf("failed to reserve doctor: %w", err)
		}
		doctor.IsAvailable = false
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("healthService.BookAppointment", err, "doctorID", doctorID)
		return nil, nil, err
	}

	logger.ExitMethod("healthService.BookAppointment", "appointmentID", appt.ID)
	return appt, doctor, nil
}

func (s *healthService) ListMyAppointments(ctx context.Context, userID int32) ([]domain.Appointment, error) {
	appts, err := s.apptRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

func (s *healthService) UpdateMyAppointment(ctx context.Context, userID, appointmentID int32, status domain.AppointmentStatus) error {
	return s.changeStatus(ctx, appointmentID, status, func(appt *domain.Appointment) bool {
		return appt.UserID == userID
	})
}

func (s *healthService) UpdateAppointmentStatus(ctx context.Context, appointmentID int32, status domain.AppointmentStatus) error {
	return s.changeStatus(ctx, appointmentID, status, nil)
}

func (s *healthService) DeleteMyAppointment(ctx context.Context, userID, appointmentID int32) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		appt, err := s.loadAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if appt.UserID != userID {
			return notFoundError("Appointment not found")
		}
		if appt.Status == domain.AppointmentScheduled {
			if err := s.doctorRepo.SetAvailability(ctx, appt.DoctorID, true); err != nil {
				return fmt.Errorf("failed to release doctor: %w", err)
			}
		}
		if err := s.apptRepo.Delete(ctx, appt.ID); err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		return nil
	})
}

func (s *healthService) ListAllAppointments(ctx context.Context) ([]domain.Appointment, error) {
	appts, err := s.apptRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

// changeStatus moves an appointment to status. Completing or cancelling a scheduled
// appointment frees its doctor. allowed, when set, scopes the change to an owner.
func (s *healthService) changeStatus(ctx context.Context, appointmentID int32, status domain.AppointmentStatus, allowed func(*domain.Appointment) bool) error {
	if !status.Valid() {
		return validationError(fmt.Sprintf("Invalid status: %s", status))
	}

	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		appt, err := s.loadAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if allowed != nil && !allowed(appt) {
			return notFoundError("Appointment not found")
		}

		if err := s.apptRepo.UpdateStatus(ctx, appt.ID, status); err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		if appt.Status == domain.AppointmentScheduled && status.ReleasesDoctor() {
			if err := s.doctorRepo.SetAvailability(ctx, appt.DoctorID, true); err != nil {
				return fmt.Errorf("failed to release doctor: %w", err)
			}
		}
		return nil
	})
}

func (s *healthService) loadAppointment(ctx context.Context, id int32) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("Appointment not found")
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return appt, nil
}
