package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// CarListingQuery is the storage-level filter for car listings. Text
// fragments have already been resolved: car type and car model arrive as id
// lists, free-text fields match as case-insensitive substrings. Nil or empty
// fields drop out of the filter.
type CarListingQuery struct {
	ProductName string
	Address     string
	Status      string
	IsApproved  *bool
	IsBooked    *bool
	AmenityIDs  []string
	CarTypeIDs  []string
	CarModelIDs []string
}

type ShortletListingQuery struct {
	ProductName     string
	Address         string
	TypeOfApartment string
	Status          string
	IsApproved      *bool
	IsBooked        *bool
	AmenityIDs      []string
}

func regexEscape(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func containsFilter(fragment string) bson.M {
	return bson.M{"$regex": regexEscape(fragment), "$options": "i"}
}

func (q CarListingQuery) build(userID string) bson.M {
	filter := bson.M{"user_id": userID}
	if q.ProductName != "" {
		filter["product_name"] = containsFilter(q.ProductName)
	}
	if q.Address != "" {
		filter["address"] = containsFilter(q.Address)
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.IsApproved != nil {
		filter["is_approved"] = *q.IsApproved
	}
	if q.IsBooked != nil {
		filter["is_booked"] = *q.IsBooked
	}
	if len(q.AmenityIDs) > 0 {
		filter["amenity_ids"] = bson.M{"$in": q.AmenityIDs}
	}
	if len(q.CarTypeIDs) > 0 {
		filter["car_type_id"] = bson.M{"$in": q.CarTypeIDs}
	}
	if len(q.CarModelIDs) > 0 {
		filter["car_model_id"] = bson.M{"$in": q.CarModelIDs}
	}
	return filter
}

func (q ShortletListingQuery) build(userID string) bson.M {
	filter := bson.M{"user_id": userID}
	if q.ProductName != "" {
		filter["product_name"] = containsFilter(q.ProductName)
	}
	if q.Address != "" {
		filter["address"] = containsFilter(q.Address)
	}
	if q.TypeOfApartment != "" {
		filter["type_of_apartment"] = containsFilter(q.TypeOfApartment)
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.IsApproved != nil {
		filter["is_approved"] = *q.IsApproved
	}
	if q.IsBooked != nil {
		filter["is_booked"] = *q.IsBooked
	}
	if len(q.AmenityIDs) > 0 {
		filter["amenity_ids"] = bson.M{"$in": q.AmenityIDs}
	}
	return filter
}
