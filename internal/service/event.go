package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

// EventBooking is the outcome of a successful booking.
type EventBooking struct {
	Event           *domain.Event
	BalanceDeducted decimal.Decimal
	NewBalance      decimal.Decimal
}

type EventInput struct {
	Name        string
	Date        time.Time
	Location    string
	Description string
	Capacity    int
	TicketType  string
	TicketPrice decimal.Decimal
}

func (in EventInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Location) == "" ||
		strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.TicketType) == "" {
		return validationError("Name, location, description and ticket type are required")
	}
	if in.Date.IsZero() {
		return validationError("Event date is required")
	}
	if in.Capacity <= 0 {
		return validationError("Capacity must be greater than zero")
	}
	if in.TicketPrice.IsNegative() {
		return validationError("Ticket price cannot be negative")
	}
	return nil
}

func (in EventInput) applyTo(event *domain.Event) {
	event.Name = strings.TrimSpace(in.Name)
	event.Date = in.Date
	event.Location = strings.TrimSpace(in.Location)
	event.Description = in.Description
	event.Capacity = in.Capacity
	event.TicketType = strings.TrimSpace(in.TicketType)
	event.TicketPrice = domain.Money(in.TicketPrice)
	event.SyncPaid()
}

type eventService struct {
	txManager repository.TxManager
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	ledger    LedgerService
}

func NewEventService(txManager repository.TxManager, eventRepo repository.EventRepository, userRepo repository.UserRepository, ledger LedgerService) EventService {
	return &eventService{
		txManager: txManager,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		ledger:    ledger,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// BookEvent locks the event row before the user row.
func (s *eventService) BookEvent(ctx context.Context, userID, eventID int32) (*EventBooking, error) {
	logger.EnterMethod("eventService.BookEvent", "userID", userID, "eventID", eventID)

	var result *EventBooking
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError("Event not found")
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		user, err := s.userRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError("User not found")
			}
			return fmt.Errorf("failed to load user: %w", err)
		}

		if event.HasBooked(user.Username) {
			return conflictError("You are already booked for this event")
		}
		if event.IsFull() {
			return conflictError("Event is fully booked")
		}

		deducted := decimal.Zero
		if event.TicketPrice.IsPositive() {
			entry := LedgerEntry{
				Type:        domain.TransactionTypeEventBooking,
				Description: fmt.Sprintf("Event booking: %s - %s ticket", event.Name, event.TicketType),
				RelatedID:   &event.ID,
				Audited:     true,
			}
			if err := s.ledger.Debit(ctx, user, event.TicketPrice, entry); err != nil {
				return err
			}
			deducted = event.TicketPrice
		}

		if err := s.eventRepo.AddBooking(ctx, event.ID, user.Username); err != nil {
			return fmt.Errorf("failed to record booking: %w", err)
		}
		event.BookedUsers = append(event.BookedUsers, user.Username)

		result = &EventBooking{
			Event:           event,
			BalanceDeducted: deducted,
			NewBalance:      user.Balance,
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("eventService.BookEvent", err, "eventID", eventID)
		return nil, err
	}

	logger.ExitMethod("eventService.BookEvent", "eventID", eventID, "deducted", result.BalanceDeducted.String())
	return result, nil
}

func (s *eventService) CreateEvent(ctx context.Context, in EventInput) (*domain.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	event := &domain.Event{BookedUsers: []string{}}
	in.applyTo(event)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	logger.Info("Event created", "eventID", event.ID, "name", event.Name)
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int32, in EventInput) (*domain.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var event *domain.Event
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		event, err = s.eventRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError("Event not found")
			}
			return fmt.Errorf("failed to load event: %w", err)
		}
		in.applyTo(event)
		if err := s.eventRepo.Update(ctx, event); err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int32) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError("Event not found")
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
