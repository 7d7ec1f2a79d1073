package validators

import "go.mongodb.org/mongo-driver/bson"

var UserBusinessValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"business_name",
			"business_country",
			"business_state",
			"business_postal_code",
			"created_on",
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

			"business_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 250,
			},

			"category_ids": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"business_country": bson.M{
				"bsonType":  "string",
				"maxLength": 250,
			},

			"business_state": bson.M{
				"bsonType":  "string",
				"maxLength": 250,
			},

			"business_postal_code": bson.M{
				"bsonType":  "string",
				"maxLength": 250,
			},

			"business_city": bson.M{
				"bsonType":  "string",
				"maxLength": 250,
			},

			"is_owner": bson.M{
				"bsonType": "bool",
			},

			"created_on": bson.M{
				"bsonType": "date",
			},

			"updated_on": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var BusinessCategoryValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"text",
			"created_on",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"text": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 250,
			},

			"created_on": bson.M{
				"bsonType": "date",
			},
		},
	},
}
