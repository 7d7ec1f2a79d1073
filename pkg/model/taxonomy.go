package model

import "time"

// TaxonomyKind names one of the reusable labeled attribute sets a listing can
// reference. Each kind maps to its own collection but shares the same shape,
// so one repository and one handler serve all five.
type TaxonomyKind string

const (
	TaxonomyAmenity        TaxonomyKind = "amenity"
	TaxonomySpecification  TaxonomyKind = "specification"
	TaxonomyDiscountOption TaxonomyKind = "discount_option"
	TaxonomyCarType        TaxonomyKind = "car_type"
	TaxonomyCarModel       TaxonomyKind = "car_model"
)

func (k TaxonomyKind) Valid() bool {
	switch k {
	case TaxonomyAmenity, TaxonomySpecification, TaxonomyDiscountOption, TaxonomyCarType, TaxonomyCarModel:
		return true
	}
	return false
}

// Collection returns the mongo collection backing this kind.
func (k TaxonomyKind) Collection() string {
	switch k {
	case TaxonomyAmenity:
		return "amenities"
	case TaxonomySpecification:
		return "specifications"
	case TaxonomyDiscountOption:
		return "discount_options"
	case TaxonomyCarType:
		return "car_types"
	case TaxonomyCarModel:
		return "car_models"
	}
	return ""
}

// Resource is the human-facing name used in envelope messages.
func (k TaxonomyKind) Resource() string {
	switch k {
	case TaxonomyAmenity:
		return "Amenity"
	case TaxonomySpecification:
		return "Specification"
	case TaxonomyDiscountOption:
		return "Discount option"
	case TaxonomyCarType:
		return "Car type"
	case TaxonomyCarModel:
		return "Car model"
	}
	return "Taxonomy item"
}

type TaxonomyItem struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Label     string    `json:"label" bson:"label" validate:"required,min=1,max=250"`
	Thumbnail string    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty" validate:"omitempty,url"`
	CreatedOn time.Time `json:"created_on" bson:"created_on"`
	UpdatedOn time.Time `json:"updated_on" bson:"updated_on"`
}
