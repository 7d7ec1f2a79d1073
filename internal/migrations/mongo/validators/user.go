package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
			"registration_method",
			"date_joined",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"password": bson.M{
				"bsonType": "string",
			},

			"first_name": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"last_name": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"phone_number": bson.M{
				"bsonType":  "string",
				"maxLength": 20,
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"is_verified": bson.M{
				"bsonType": "bool",
			},

			"is_business": bson.M{
				"bsonType": "bool",
			},

			"registration_method": bson.M{
				"enum": []string{"Email_password", "Google"},
			},

			"date_joined": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var RevokedTokenValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"revoked_at",
			"expires_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"revoked_at": bson.M{
				"bsonType": "date",
			},

			"expires_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
