package model

import "time"

const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

type Booking struct {
	ID              string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	UserID          string      `json:"user_id" bson:"user_id" validate:"omitempty,uuid4"`
	OwnerID         string      `json:"owner_id" bson:"owner_id" validate:"omitempty,uuid4"`
	ListingKind     ListingKind `json:"listing_type" bson:"listing_kind" validate:"required,oneof=car_listing shortlet_listing"`
	ListingID       string      `json:"listing_id" bson:"listing_id" validate:"required,uuid4"`
	StartTime       time.Time   `json:"start_time" bson:"start_time" validate:"required"`
	EndTime         time.Time   `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Location        string      `json:"location" bson:"location" validate:"required,max=255"`
	PickUpLocation  string      `json:"pick_up_location" bson:"pick_up_location" validate:"omitempty,max=255"`
	DropOffLocation string      `json:"drop_off_location" bson:"drop_off_location" validate:"omitempty,max=255"`
	Notes           string      `json:"notes" bson:"notes"`
	Price           float64     `json:"price" bson:"price" validate:"gte=0"`
	Status          string      `json:"status" bson:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	CreatedOn       time.Time   `json:"created_on" bson:"created_on"`
	UpdatedOn       time.Time   `json:"updated_on" bson:"updated_on"`
}

// BookingUpdate carries partial changes; nil or empty fields keep the
// existing value. The polymorphic reference is immutable after creation.
type BookingUpdate struct {
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Location        *string    `json:"location,omitempty" validate:"omitempty,max=255"`
	PickUpLocation  *string    `json:"pick_up_location,omitempty" validate:"omitempty,max=255"`
	DropOffLocation *string    `json:"drop_off_location,omitempty" validate:"omitempty,max=255"`
	Notes           *string    `json:"notes,omitempty"`
	Price           *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Status          string     `json:"status,omitempty" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
}
