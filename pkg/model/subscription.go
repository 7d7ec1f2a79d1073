package model

import "time"

// UserMembership describes a purchasable plan.
type UserMembership struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Name        string    `json:"name" bson:"name" validate:"required,max=100"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	DurationDay int       `json:"duration_day" bson:"duration_day" validate:"gte=0"`
	Description string    `json:"description" bson:"description"`
	CreatedOn   time.Time `json:"created_on" bson:"created_on"`
}

// Subscription ties a user to a membership plan. Listing creation is
// gated on the user holding an active one.
type Subscription struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	UserID       string    `json:"user_id" bson:"user_id" validate:"required,uuid4"`
	MembershipID string    `json:"membership_id" bson:"membership_id" validate:"required,uuid4"`
	Active       bool      `json:"active" bson:"active"`
	ExpiresOn    time.Time `json:"expires_on" bson:"expires_on"`
	CreatedOn    time.Time `json:"created_on" bson:"created_on"`
}
