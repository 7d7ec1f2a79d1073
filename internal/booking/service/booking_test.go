package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	bookingerrors "tripdey/internal/booking/errors"
	"tripdey/internal/booking/validator"
	catalogerrors "tripdey/internal/catalog/errors"
	"tripdey/pkg/config"
	apperrors "tripdey/pkg/errors"
	"tripdey/pkg/logger"
	"tripdey/pkg/mailer"
	"tripdey/pkg/model"

	"github.com/google/uuid"
)

type mockBookingRepository struct {
	createFunc        func(ctx context.Context, booking *model.Booking) error
	updateByPartyFunc func(ctx context.Context, id, callerID string, update *model.BookingUpdate) error
	deleteOwnedFunc   func(ctx context.Context, id, userID string) error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return &model.Booking{ID: id}, nil
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) UpdateByParty(ctx context.Context, id, callerID string, update *model.BookingUpdate) error {
	if m.updateByPartyFunc != nil {
		return m.updateByPartyFunc(ctx, id, callerID, update)
	}
	return nil
}

func (m *mockBookingRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	if m.deleteOwnedFunc != nil {
		return m.deleteOwnedFunc(ctx, id, userID)
	}
	return nil
}

func (m *mockBookingRepository) RemoveForUser(ctx context.Context, userID string) error {
	return nil
}

type mockListingResolver struct {
	resolveFunc func(ctx context.Context, kind model.ListingKind, id string) (*model.ListingRef, error)
}

func (m *mockListingResolver) ResolveListing(ctx context.Context, kind model.ListingKind, id string) (*model.ListingRef, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, kind, id)
	}
	return nil, fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
}

type mockOwnerSource struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockOwnerSource) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.User{ID: id, Email: "owner@example.com"}, nil
}

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) Send(_ context.Context, eventType string, _ mailer.Mail) error {
	m.sent = append(m.sent, eventType)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatJSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(bookings *mockBookingRepository, listings *mockListingResolver, mail mailer.Mailer) BookingService {
	if bookings == nil {
		bookings = &mockBookingRepository{}
	}
	if listings == nil {
		listings = &mockListingResolver{}
	}
	if mail == nil {
		mail = &recordingMailer{}
	}
	return NewBookingService(bookings, listings, &mockOwnerSource{}, mail, validator.NewBookingValidator(), testConfig())
}

func assertAppErrorCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != wantCode {
		t.Fatalf("error code = %s, want %s (message: %s)", appErr.Code, wantCode, appErr.Message)
	}
}

func validBooking(listingID string) *model.Booking {
	start := time.Now().Add(24 * time.Hour).UTC()
	return &model.Booking{
		ListingKind: model.ListingKindCar,
		ListingID:   listingID,
		StartTime:   start,
		EndTime:     start.Add(48 * time.Hour),
		Location:    "Lagos",
		Price:       50000,
	}
}

func TestCreate(t *testing.T) {
	listingID := uuid.NewString()
	ownerID := uuid.NewString()
	listings := &mockListingResolver{
		resolveFunc: func(ctx context.Context, kind model.ListingKind, id string) (*model.ListingRef, error) {
			return &model.ListingRef{Kind: kind, ID: id, OwnerID: ownerID, Name: "Toyota Camry 2021"}, nil
		},
	}
	mail := &recordingMailer{}
	svc := newTestService(nil, listings, mail)

	userID := uuid.NewString()
	booking, err := svc.Create(context.Background(), userID, validBooking(listingID))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if booking.UserID != userID {
		t.Errorf("UserID = %q, want %q", booking.UserID, userID)
	}
	if booking.OwnerID != ownerID {
		t.Errorf("OwnerID = %q, want the listing owner %q", booking.OwnerID, ownerID)
	}
	if booking.Status != model.BookingStatusPending {
		t.Errorf("Status = %q, want %q", booking.Status, model.BookingStatusPending)
	}
	if len(mail.sent) != 1 || mail.sent[0] != mailer.EventBookingCreated {
		t.Errorf("mail events = %v, want [%s]", mail.sent, mailer.EventBookingCreated)
	}
}

func TestCreate_ListingDoesNotExist(t *testing.T) {
	svc := newTestService(nil, &mockListingResolver{}, nil)

	_, err := svc.Create(context.Background(), uuid.NewString(), validBooking(uuid.NewString()))
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestCreate_InvalidListingKind(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	booking := validBooking(uuid.NewString())
	booking.ListingKind = "boat_listing"
	_, err := svc.Create(context.Background(), uuid.NewString(), booking)
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}

func TestCreate_EndBeforeStart(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	booking := validBooking(uuid.NewString())
	booking.EndTime = booking.StartTime.Add(-time.Hour)
	_, err := svc.Create(context.Background(), uuid.NewString(), booking)
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}

func TestUpdate_EndBeforeStart(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	start := time.Now().UTC()
	end := start.Add(-time.Hour)
	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), &model.BookingUpdate{
		StartTime: &start,
		EndTime:   &end,
	})
	assertAppErrorCode(t, err, apperrors.CodeValidation)
}

func TestUpdate_EitherPartyMayUpdate(t *testing.T) {
	bookingID := uuid.NewString()
	requesterID := uuid.NewString()
	ownerID := uuid.NewString()
	strangerID := uuid.NewString()

	bookings := &mockBookingRepository{
		updateByPartyFunc: func(ctx context.Context, id, callerID string, update *model.BookingUpdate) error {
			if callerID == requesterID || callerID == ownerID {
				return nil
			}
			return fmt.Errorf("%w: %s", bookingerrors.ErrNotFound, id)
		},
	}
	svc := newTestService(bookings, nil, nil)

	status := model.BookingStatusConfirmed
	// The listing owner confirms a booking they did not request.
	if _, err := svc.Update(context.Background(), bookingID, ownerID, &model.BookingUpdate{Status: status}); err != nil {
		t.Fatalf("owner-side Update() error = %v", err)
	}
	if _, err := svc.Update(context.Background(), bookingID, requesterID, &model.BookingUpdate{Status: status}); err != nil {
		t.Fatalf("requester-side Update() error = %v", err)
	}

	_, err := svc.Update(context.Background(), bookingID, strangerID, &model.BookingUpdate{Status: status})
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestDelete_OtherUsersBookingLooksMissing(t *testing.T) {
	bookings := &mockBookingRepository{
		deleteOwnedFunc: func(ctx context.Context, id, userID string) error {
			return fmt.Errorf("%w: %s", bookingerrors.ErrNotFound, id)
		},
	}
	svc := newTestService(bookings, nil, nil)

	err := svc.Delete(context.Background(), uuid.NewString(), uuid.NewString())
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}
