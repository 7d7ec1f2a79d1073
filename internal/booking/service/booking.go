package service

import (
	"context"
	"errors"
	"fmt"

	bookingerrors "tripdey/internal/booking/errors"
	"tripdey/internal/booking/repository"
	"tripdey/internal/booking/validator"
	catalogerrors "tripdey/internal/catalog/errors"
	"tripdey/pkg/config"
	apperrors "tripdey/pkg/errors"
	"tripdey/pkg/mailer"
	"tripdey/pkg/model"
	"tripdey/pkg/sanitizer"
	"tripdey/pkg/validation"
)

// ListingResolver turns a polymorphic (kind, id) reference into the listing
// being booked. Satisfied by the catalog service.
type ListingResolver interface {
	ResolveListing(ctx context.Context, kind model.ListingKind, id string) (*model.ListingRef, error)
}

// OwnerSource looks up the listing owner for the booking notification.
type OwnerSource interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type BookingService interface {
	Create(ctx context.Context, userID string, booking *model.Booking) (*model.Booking, error)
	Get(ctx context.Context, id string) (*model.Booking, error)
	ListMine(ctx context.Context, userID string) ([]*model.Booking, error)
	Update(ctx context.Context, id, userID string, update *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id, userID string) error
}

type bookingService struct {
	bookings  repository.BookingRepository
	listings  ListingResolver
	owners    OwnerSource
	mail      mailer.Mailer
	validator *validator.BookingValidator
	cfg       *config.Config
}

func NewBookingService(
	bookings repository.BookingRepository,
	listings ListingResolver,
	owners OwnerSource,
	mail mailer.Mailer,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		bookings:  bookings,
		listings:  listings,
		owners:    owners,
		mail:      mail,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, userID string, booking *model.Booking) (*model.Booking, error) {
	booking.UserID = userID
	booking.Location = sanitizer.TrimAndNormalize(booking.Location)
	booking.PickUpLocation = sanitizer.TrimAndNormalize(booking.PickUpLocation)
	booking.DropOffLocation = sanitizer.TrimAndNormalize(booking.DropOffLocation)
	if booking.Status == "" {
		booking.Status = model.BookingStatusPending
	}

	if err := s.validator.Validate(booking); err != nil {
		return nil, asValidationError(err)
	}

	ref, err := s.listings.ResolveListing(ctx, booking.ListingKind, booking.ListingID)
	if err != nil {
		return nil, s.mapResolveError(err, booking.ListingID)
	}
	booking.OwnerID = ref.OwnerID

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.notifyOwner(ctx, booking, ref)
	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapBookingError(err, id)
	}
	return booking, nil
}

func (s *bookingService) ListMine(ctx context.Context, userID string) ([]*model.Booking, error) {
	bookings, err := s.bookings.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Update(ctx context.Context, id, userID string, update *model.BookingUpdate) (*model.Booking, error) {
	if err := s.validator.Validate(update); err != nil {
		return nil, asValidationError(err)
	}
	if update.StartTime != nil && update.EndTime != nil && !update.EndTime.After(*update.StartTime) {
		return nil, apperrors.Validation("end_time must be after start_time", nil)
	}

	if err := s.bookings.UpdateByParty(ctx, id, userID, update); err != nil {
		return nil, s.mapBookingError(err, id)
	}

	updated, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapBookingError(err, id)
	}
	return updated, nil
}

func (s *bookingService) Delete(ctx context.Context, id, userID string) error {
	if err := s.bookings.DeleteOwned(ctx, id, userID); err != nil {
		return s.mapBookingError(err, id)
	}
	return nil
}

// notifyOwner emails the listing owner. Delivery failures never fail the
// booking.
func (s *bookingService) notifyOwner(ctx context.Context, booking *model.Booking, ref *model.ListingRef) {
	owner, err := s.owners.FindByID(ctx, ref.OwnerID)
	if err != nil {
		s.cfg.Log.Error("failed to look up listing owner for booking notification", "booking_id", booking.ID, "owner_id", ref.OwnerID, "error", err)
		return
	}

	body := fmt.Sprintf(
		"You have a new booking for %s from %s to %s.",
		ref.Name,
		booking.StartTime.Format("2 Jan 2006 15:04"),
		booking.EndTime.Format("2 Jan 2006 15:04"),
	)
	mail := mailer.Mail{
		To:      owner.Email,
		Subject: "New booking received",
		Body:    body,
	}
	if err := s.mail.Send(ctx, mailer.EventBookingCreated, mail); err != nil {
		s.cfg.Log.Error("failed to send booking notification", "booking_id", booking.ID, "error", err)
	}
}

func (s *bookingService) mapResolveError(err error, listingID string) error {
	switch {
	case errors.Is(err, catalogerrors.ErrNotFound), errors.Is(err, catalogerrors.ErrInvalidID):
		return apperrors.NotFoundWithID("Listing", listingID)
	case errors.Is(err, catalogerrors.ErrInvalidKind):
		return apperrors.Validation("listing_type must be car_listing or shortlet_listing", nil)
	default:
		return apperrors.Internal("An unexpected error occurred", err)
	}
}

func (s *bookingService) mapBookingError(err error, id string) error {
	switch {
	case errors.Is(err, bookingerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	default:
		return apperrors.Internal("An unexpected error occurred", err)
	}
}

func asValidationError(err error) error {
	var fieldErrors validation.FieldErrors
	if errors.As(err, &fieldErrors) {
		return apperrors.Validation("Validation failed", fieldErrors.Details())
	}
	return apperrors.Validation(err.Error(), nil)
}
