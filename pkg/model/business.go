package model

import "time"

type UserBusiness struct {
	ID                 string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	UserID             string    `json:"user_id" bson:"user_id" validate:"omitempty,uuid4"`
	BusinessName       string    `json:"business_name" bson:"business_name" validate:"required,min=2,max=250"`
	CategoryIDs        []string  `json:"category_type" bson:"category_ids" validate:"omitempty,dive,uuid4"`
	BusinessCountry    string    `json:"business_country" bson:"business_country" validate:"required,max=250"`
	BusinessState      string    `json:"business_state" bson:"business_state" validate:"required,max=250"`
	BusinessPostalCode string    `json:"business_postal_code" bson:"business_postal_code" validate:"required,max=250"`
	BusinessCity       string    `json:"business_city" bson:"business_city" validate:"omitempty,max=250"`
	IsOwner            bool      `json:"is_owner" bson:"is_owner"`
	CreatedOn          time.Time `json:"created_on" bson:"created_on"`
	UpdatedOn          time.Time `json:"updated_on" bson:"updated_on"`
}

type BusinessCategory struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Text      string    `json:"text" bson:"text" validate:"required,min=2,max=250"`
	CreatedOn time.Time `json:"created_on" bson:"created_on"`
	UpdatedOn time.Time `json:"updated_on" bson:"updated_on"`
}
