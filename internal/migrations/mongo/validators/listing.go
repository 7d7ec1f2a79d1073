package validators

import "go.mongodb.org/mongo-driver/bson"

// TaxonomyValidator covers amenities, specifications, discount_options,
// car_types and car_models. The five collections share one shape.
var TaxonomyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"label",
			"created_on",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"label": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 250,
			},

			"thumbnail": bson.M{
				"bsonType": "string",
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

var CarListingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"address",
			"product_name",
			"status",
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

			"business_id": bson.M{
				"bsonType": "string",
			},

			"address": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"product_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 250,
			},

			"thumbnails": bson.M{
				"bsonType": "array",
				"maxItems": 6,
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"specification_ids": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"amenity_ids": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"car_type_id": bson.M{
				"bsonType": "string",
			},

			"car_model_id": bson.M{
				"bsonType": "string",
			},

			"is_driver": bson.M{
				"bsonType": "bool",
			},

			"price_per_day": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"status": bson.M{
				"enum": []string{"PENDING", "CONFIRMED", "CANCELLED"},
			},

			"is_approved": bson.M{
				"bsonType": "bool",
			},

			"is_booked": bson.M{
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

var ShortletListingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"address",
			"product_name",
			"type_of_apartment",
			"max_guests",
			"status",
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

			"business_id": bson.M{
				"bsonType": "string",
			},

			"address": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"product_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 250,
			},

			"thumbnails": bson.M{
				"bsonType": "array",
				"maxItems": 6,
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"type_of_apartment": bson.M{
				"bsonType":  "string",
				"maxLength": 250,
			},

			"max_guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"price_per_day": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"status": bson.M{
				"enum": []string{"PENDING", "CONFIRMED", "CANCELLED"},
			},

			"is_approved": bson.M{
				"bsonType": "bool",
			},

			"is_booked": bson.M{
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
