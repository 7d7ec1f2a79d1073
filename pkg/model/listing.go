package model

import "time"

// ListingKind tags the polymorphic reference a booking or review carries.
// Only the two kinds below exist; anything else is a validation error.
type ListingKind string

const (
	ListingKindCar      ListingKind = "car_listing"
	ListingKindShortlet ListingKind = "shortlet_listing"
)

func (k ListingKind) Valid() bool {
	return k == ListingKindCar || k == ListingKindShortlet
}

const (
	ListingStatusPending   = "PENDING"
	ListingStatusConfirmed = "CONFIRMED"
	ListingStatusCancelled = "CANCELLED"
)

// MaxListingImages bounds the thumbnail gallery per listing.
const MaxListingImages = 6

// ListingRef is the resolved form of a (kind, id) reference: enough of the
// concrete listing for bookings and reviews to act on without loading the
// full document.
type ListingRef struct {
	Kind       ListingKind `json:"kind"`
	ID         string      `json:"id"`
	OwnerID    string      `json:"owner_id"`
	BusinessID string      `json:"business_id"`
	Name       string      `json:"name"`
	IsBooked   bool        `json:"is_booked"`
}

type CarListing struct {
	ID                 string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	UserID             string    `json:"user_id" bson:"user_id" validate:"omitempty,uuid4"`
	BusinessID         string    `json:"business_id" bson:"business_id" validate:"omitempty,uuid4"`
	Address            string    `json:"address" bson:"address" validate:"required"`
	Landmark1          string    `json:"landmark_1" bson:"landmark_1"`
	Landmark2          string    `json:"landmark_2" bson:"landmark_2"`
	Landmark3          string    `json:"landmark_3" bson:"landmark_3"`
	ProductName        string    `json:"product_name" bson:"product_name" validate:"required,min=2,max=250"`
	ProductDescription string    `json:"product_description" bson:"product_description"`
	Thumbnails         []string  `json:"thumbnails" bson:"thumbnails" validate:"omitempty,max=6,dive,url"`
	SpecificationIDs   []string  `json:"specification" bson:"specification_ids" validate:"omitempty,dive,uuid4"`
	AmenityIDs         []string  `json:"amenities" bson:"amenity_ids" validate:"omitempty,dive,uuid4"`
	CarTypeID          string    `json:"type_of_car" bson:"car_type_id" validate:"omitempty,uuid4"`
	CarModelID         string    `json:"car_model" bson:"car_model_id" validate:"omitempty,uuid4"`
	IsDriver           bool      `json:"is_driver" bson:"is_driver"`
	PricePerDay        float64   `json:"price_per_day" bson:"price_per_day" validate:"gte=0"`
	Discount           string    `json:"discount" bson:"discount"`
	DiscountOptionID   string    `json:"discount_option" bson:"discount_option_id" validate:"omitempty,uuid4"`
	DiscountPrice      float64   `json:"discount_price" bson:"discount_price" validate:"gte=0"`
	ProofOfOwnership   string    `json:"proof_of_ownership" bson:"proof_of_ownership" validate:"omitempty,url"`
	Status             string    `json:"status" bson:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	IsApproved         bool      `json:"is_approved" bson:"is_approved"`
	IsBooked           bool      `json:"is_booked" bson:"is_booked"`
	CreatedOn          time.Time `json:"created_on" bson:"created_on"`
	UpdatedOn          time.Time `json:"updated_on" bson:"updated_on"`
}

type ShortletListing struct {
	ID                   string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	UserID               string    `json:"user_id" bson:"user_id" validate:"omitempty,uuid4"`
	BusinessID           string    `json:"business_id" bson:"business_id" validate:"omitempty,uuid4"`
	Address              string    `json:"address" bson:"address" validate:"required"`
	Landmark1            string    `json:"landmark_1" bson:"landmark_1"`
	Landmark2            string    `json:"landmark_2" bson:"landmark_2"`
	Landmark3            string    `json:"landmark_3" bson:"landmark_3"`
	ProductName          string    `json:"product_name" bson:"product_name" validate:"required,min=2,max=250"`
	ProductDescription   string    `json:"product_description" bson:"product_description"`
	Thumbnails           []string  `json:"thumbnails" bson:"thumbnails" validate:"omitempty,max=6,dive,url"`
	SpecificationIDs     []string  `json:"specification" bson:"specification_ids" validate:"omitempty,dive,uuid4"`
	AmenityIDs           []string  `json:"amenities" bson:"amenity_ids" validate:"omitempty,dive,uuid4"`
	TypeOfApartment      string    `json:"type_of_apartment" bson:"type_of_apartment" validate:"required,max=250"`
	UtilityServiceStaffs string    `json:"utility_service_staffs" bson:"utility_service_staffs"`
	MaxGuests            int       `json:"max_guests" bson:"max_guests" validate:"required,min=1"`
	PricePerDay          float64   `json:"price_per_day" bson:"price_per_day" validate:"gte=0"`
	Discount             string    `json:"discount" bson:"discount"`
	DiscountOptionID     string    `json:"discount_option" bson:"discount_option_id" validate:"omitempty,uuid4"`
	DiscountPrice        float64   `json:"discount_price" bson:"discount_price" validate:"gte=0"`
	ProofOfOwnership     string    `json:"proof_of_ownership" bson:"proof_of_ownership" validate:"omitempty,url"`
	Status               string    `json:"status" bson:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	IsApproved           bool      `json:"is_approved" bson:"is_approved"`
	IsBooked             bool      `json:"is_booked" bson:"is_booked"`
	CreatedOn            time.Time `json:"created_on" bson:"created_on"`
	UpdatedOn            time.Time `json:"updated_on" bson:"updated_on"`
}

// CarListingInput is the write shape for car listings: amenity, specification,
// car type, car model and discount option are supplied as plain labels and
// resolved get-or-create before persisting.
type CarListingInput struct {
	Address            string   `json:"address" validate:"required"`
	Landmark1          string   `json:"landmark_1"`
	Landmark2          string   `json:"landmark_2"`
	Landmark3          string   `json:"landmark_3"`
	ProductName        string   `json:"product_name" validate:"required,min=2,max=250"`
	ProductDescription string   `json:"product_description"`
	Thumbnails         []string `json:"thumbnails" validate:"omitempty,max=6,dive,url"`
	Specifications     []string `json:"specification" validate:"omitempty,dive,min=1"`
	Amenities          []string `json:"amenities" validate:"omitempty,dive,min=1"`
	TypeOfCar          string   `json:"type_of_car" validate:"omitempty,min=1"`
	CarModel           string   `json:"car_model" validate:"omitempty,min=1"`
	IsDriver           bool     `json:"is_driver"`
	PricePerDay        float64  `json:"price_per_day" validate:"gte=0"`
	Discount           string   `json:"discount"`
	DiscountOption     string   `json:"discount_option" validate:"omitempty,min=1"`
	DiscountPrice      float64  `json:"discount_price" validate:"gte=0"`
	ProofOfOwnership   string   `json:"proof_of_ownership" validate:"omitempty,url"`
}

type ShortletListingInput struct {
	Address              string   `json:"address" validate:"required"`
	Landmark1            string   `json:"landmark_1"`
	Landmark2            string   `json:"landmark_2"`
	Landmark3            string   `json:"landmark_3"`
	ProductName          string   `json:"product_name" validate:"required,min=2,max=250"`
	ProductDescription   string   `json:"product_description"`
	Thumbnails           []string `json:"thumbnails" validate:"omitempty,max=6,dive,url"`
	Specifications       []string `json:"specification" validate:"omitempty,dive,min=1"`
	Amenities            []string `json:"amenities" validate:"omitempty,dive,min=1"`
	TypeOfApartment      string   `json:"type_of_apartment" validate:"required,max=250"`
	UtilityServiceStaffs string   `json:"utility_service_staffs"`
	MaxGuests            int      `json:"max_guests" validate:"required,min=1"`
	PricePerDay          float64  `json:"price_per_day" validate:"gte=0"`
	Discount             string   `json:"discount"`
	DiscountOption       string   `json:"discount_option" validate:"omitempty,min=1"`
	DiscountPrice        float64  `json:"discount_price" validate:"gte=0"`
	ProofOfOwnership     string   `json:"proof_of_ownership" validate:"omitempty,url"`
}

// CarListingFilter narrows a "get all mine" query. Nil flags mean the flag is
// not part of the filter; text fields match as case-insensitive substrings.
type CarListingFilter struct {
	ProductName string
	Address     string
	TypeOfCar   string
	CarModel    string
	Status      string
	IsApproved  *bool
	IsBooked    *bool
	Amenities   []string
}

type ShortletListingFilter struct {
	ProductName     string
	Address         string
	TypeOfApartment string
	Status          string
	IsApproved      *bool
	IsBooked        *bool
	Amenities       []string
}
