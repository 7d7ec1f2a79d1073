package model

import "time"

type Review struct {
	ID          string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	UserID      string      `json:"user_id" bson:"user_id" validate:"omitempty,uuid4"`
	ListingKind ListingKind `json:"listing_type" bson:"listing_kind" validate:"required"`
	ListingID   string      `json:"listing_id" bson:"listing_id" validate:"required,uuid4"`
	Rating      int         `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Review      string      `json:"review" bson:"review" validate:"required,max=2000"`
	CreatedOn   time.Time   `json:"created_on" bson:"created_on"`
}
