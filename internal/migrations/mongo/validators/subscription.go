package validators

import "go.mongodb.org/mongo-driver/bson"

var MembershipValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"price",
			"duration_day",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"duration_day": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"description": bson.M{
				"bsonType": "string",
			},

			"created_on": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var SubscriptionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"membership_id",
			"active",
			"expires_on",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"membership_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"expires_on": bson.M{
				"bsonType": "date",
			},

			"created_on": bson.M{
				"bsonType": "date",
			},
		},
	},
}
