package model

import "time"

const (
	RegistrationEmailPassword = "Email_password"
	RegistrationGoogle        = "Google"
)

type User struct {
	ID                 string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Email              string    `json:"email" bson:"email" validate:"required,email"`
	Password           string    `json:"-" bson:"password"`
	FirstName          string    `json:"first_name" bson:"first_name" validate:"omitempty,max=50"`
	LastName           string    `json:"last_name" bson:"last_name" validate:"omitempty,max=50"`
	PhoneNumber        string    `json:"phone_number" bson:"phone_number" validate:"omitempty,max=15"`
	Image              string    `json:"image" bson:"image" validate:"omitempty,url"`
	RegistrationMethod string    `json:"registration_method" bson:"registration_method"`
	IsStaff            bool      `json:"is_staff" bson:"is_staff"`
	IsActive           bool      `json:"is_active" bson:"is_active"`
	IsSuperuser        bool      `json:"is_superuser" bson:"is_superuser"`
	IsVerified         bool      `json:"is_verified" bson:"is_verified"`
	IsBusiness         bool      `json:"is_business" bson:"is_business"`
	IsSocialUser       bool      `json:"is_social_user" bson:"is_social_user"`
	DateJoined         time.Time `json:"date_joined" bson:"date_joined"`
}

// UserUpdate carries partial profile changes; nil fields are left untouched.
type UserUpdate struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=15"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthSession is the register/login payload: the profile together with a
// fresh token pair.
type AuthSession struct {
	User    *User  `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
