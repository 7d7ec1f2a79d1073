package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"tripdey/internal/catalog/service"
	apperrors "tripdey/pkg/errors"
	httputil "tripdey/pkg/http"
	"tripdey/pkg/logger"
	"tripdey/pkg/middleware"
	"tripdey/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CatalogHandler struct {
	service service.CatalogService
	authmw  func(httprouter.Handle) httprouter.Handle
	submw   func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewCatalogHandler(
	service service.CatalogService,
	authmw func(httprouter.Handle) httprouter.Handle,
	submw func(httprouter.Handle) httprouter.Handle,
	log *logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		authmw:  authmw,
		submw:   submw,
		log:     log,
	}
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	h.registerTaxonomyRoutes(router, "amenities", model.TaxonomyAmenity)
	h.registerTaxonomyRoutes(router, "specifications", model.TaxonomySpecification)
	h.registerTaxonomyRoutes(router, "discount-options", model.TaxonomyDiscountOption)
	h.registerTaxonomyRoutes(router, "car-types", model.TaxonomyCarType)
	h.registerTaxonomyRoutes(router, "car-models", model.TaxonomyCarModel)

	router.POST("/api/v1/listings/car-listings", h.authmw(h.submw(h.CreateCarListing)))
	router.GET("/api/v1/listings/car-listings/id/:id", h.GetCarListing)
	router.PUT("/api/v1/listings/car-listings/id/:id", h.authmw(h.UpdateCarListing))
	router.DELETE("/api/v1/listings/car-listings/id/:id", h.authmw(h.DeleteCarListing))
	router.GET("/api/v1/listings/car-rentals/all", h.authmw(h.ListCarListings))

	router.POST("/api/v1/listings/shortlet-listings", h.authmw(h.submw(h.CreateShortletListing)))
	router.GET("/api/v1/listings/shortlet-listings/id/:id", h.GetShortletListing)
	router.PUT("/api/v1/listings/shortlet-listings/id/:id", h.authmw(h.UpdateShortletListing))
	router.DELETE("/api/v1/listings/shortlet-listings/id/:id", h.authmw(h.DeleteShortletListing))
	router.GET("/api/v1/listings/shortlet-listings/all", h.authmw(h.ListShortletListings))
}

func (h *CatalogHandler) registerTaxonomyRoutes(router *httprouter.Router, segment string, kind model.TaxonomyKind) {
	base := "/api/v1/listings/" + segment
	router.GET(base, h.listTaxonomy(kind))
	router.POST(base, h.authmw(h.createTaxonomy(kind)))
	router.GET(base+"/id/:id", h.getTaxonomy(kind))
	router.PUT(base+"/id/:id", h.authmw(h.updateTaxonomy(kind)))
	router.DELETE(base+"/id/:id", h.authmw(h.deleteTaxonomy(kind)))
}

func (h *CatalogHandler) listTaxonomy(kind model.TaxonomyKind) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		items, err := h.service.ListTaxonomy(r.Context(), kind)
		if err != nil {
			h.writeError(w, err, "ListTaxonomy")
			return
		}

		message := fmt.Sprintf("%s items retrieved successfully", kind.Resource())
		if err := httputil.WriteSuccess(w, message, items); err != nil {
			h.log.Error("failed to write success response", "handler", "ListTaxonomy", "operation", "WriteSuccess", "error", err)
		}
	}
}

func (h *CatalogHandler) createTaxonomy(kind model.TaxonomyKind) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var items []*model.TaxonomyItem
		if !h.decode(w, r, &items, "CreateTaxonomy") {
			return
		}

		created, err := h.service.CreateTaxonomy(r.Context(), kind, items)
		if err != nil {
			h.writeError(w, err, "CreateTaxonomy")
			return
		}

		message := fmt.Sprintf("%s items created successfully", kind.Resource())
		if err := httputil.WriteCreated(w, message, created); err != nil {
			h.log.Error("failed to write created response", "handler", "CreateTaxonomy", "operation", "WriteCreated", "error", err)
		}
	}
}

func (h *CatalogHandler) getTaxonomy(kind model.TaxonomyKind) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		item, err := h.service.GetTaxonomy(r.Context(), kind, ps.ByName("id"))
		if err != nil {
			h.writeError(w, err, "GetTaxonomy")
			return
		}

		message := fmt.Sprintf("%s retrieved successfully", kind.Resource())
		if err := httputil.WriteSuccess(w, message, item); err != nil {
			h.log.Error("failed to write success response", "handler", "GetTaxonomy", "operation", "WriteSuccess", "error", err)
		}
	}
}

func (h *CatalogHandler) updateTaxonomy(kind model.TaxonomyKind) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var item model.TaxonomyItem
		if !h.decode(w, r, &item, "UpdateTaxonomy") {
			return
		}

		updated, err := h.service.UpdateTaxonomy(r.Context(), kind, ps.ByName("id"), &item)
		if err != nil {
			h.writeError(w, err, "UpdateTaxonomy")
			return
		}

		message := fmt.Sprintf("%s updated successfully", kind.Resource())
		if err := httputil.WriteSuccess(w, message, updated); err != nil {
			h.log.Error("failed to write success response", "handler", "UpdateTaxonomy", "operation", "WriteSuccess", "error", err)
		}
	}
}

func (h *CatalogHandler) deleteTaxonomy(kind model.TaxonomyKind) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if err := h.service.DeleteTaxonomy(r.Context(), kind, ps.ByName("id")); err != nil {
			h.writeError(w, err, "DeleteTaxonomy")
			return
		}

		message := fmt.Sprintf("%s deleted successfully", kind.Resource())
		if err := httputil.WriteSuccess(w, message, nil); err != nil {
			h.log.Error("failed to write success response", "handler", "DeleteTaxonomy", "operation", "WriteSuccess", "error", err)
		}
	}
}

func (h *CatalogHandler) CreateCarListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var input model.CarListingInput
	if !h.decode(w, r, &input, "CreateCarListing") {
		return
	}

	created, err := h.service.CreateCarListing(r.Context(), identity.UserID, &input)
	if err != nil {
		h.writeError(w, err, "CreateCarListing")
		return
	}

	if err := httputil.WriteCreated(w, "Car listing created successfully", created); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateCarListing", "operation", "WriteCreated", "error", err)
	}
}

func (h *CatalogHandler) GetCarListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	detail, err := h.service.GetCarListing(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err, "GetCarListing")
		return
	}

	if err := httputil.WriteSuccess(w, "Car listing retrieved successfully", detail); err != nil {
		h.log.Error("failed to write success response", "handler", "GetCarListing", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) ListCarListings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	query := r.URL.Query()

	filter := model.CarListingFilter{
		ProductName: query.Get("product_name"),
		Address:     query.Get("address"),
		TypeOfCar:   query.Get("type_of_car"),
		CarModel:    query.Get("car_model"),
		Status:      query.Get("status"),
		IsApproved:  parseFlag(query.Get("is_approved")),
		IsBooked:    parseFlag(query.Get("is_booked")),
		Amenities:   query["amenities"],
	}

	listings, err := h.service.ListCarListings(r.Context(), identity.UserID, filter)
	if err != nil {
		h.writeError(w, err, "ListCarListings")
		return
	}

	if err := httputil.WriteSuccess(w, "Car listings retrieved successfully", listings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListCarListings", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) UpdateCarListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var input model.CarListingInput
	if !h.decode(w, r, &input, "UpdateCarListing") {
		return
	}

	updated, err := h.service.UpdateCarListing(r.Context(), ps.ByName("id"), identity.UserID, &input)
	if err != nil {
		h.writeError(w, err, "UpdateCarListing")
		return
	}

	if err := httputil.WriteSuccess(w, "Car listing updated successfully", updated); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateCarListing", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) DeleteCarListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	if err := h.service.DeleteCarListing(r.Context(), ps.ByName("id"), identity.UserID); err != nil {
		h.writeError(w, err, "DeleteCarListing")
		return
	}

	if err := httputil.WriteSuccess(w, "Car listing deleted successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "DeleteCarListing", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) CreateShortletListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var input model.ShortletListingInput
	if !h.decode(w, r, &input, "CreateShortletListing") {
		return
	}

	created, err := h.service.CreateShortletListing(r.Context(), identity.UserID, &input)
	if err != nil {
		h.writeError(w, err, "CreateShortletListing")
		return
	}

	if err := httputil.WriteCreated(w, "Shortlet listing created successfully", created); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateShortletListing", "operation", "WriteCreated", "error", err)
	}
}

func (h *CatalogHandler) GetShortletListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	detail, err := h.service.GetShortletListing(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err, "GetShortletListing")
		return
	}

	if err := httputil.WriteSuccess(w, "Shortlet listing retrieved successfully", detail); err != nil {
		h.log.Error("failed to write success response", "handler", "GetShortletListing", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) ListShortletListings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	query := r.URL.Query()

	filter := model.ShortletListingFilter{
		ProductName:     query.Get("product_name"),
		Address:         query.Get("address"),
		TypeOfApartment: query.Get("type_of_apartment"),
		Status:          query.Get("status"),
		IsApproved:      parseFlag(query.Get("is_approved")),
		IsBooked:        parseFlag(query.Get("is_booked")),
		Amenities:       query["amenities"],
	}

	listings, err := h.service.ListShortletListings(r.Context(), identity.UserID, filter)
	if err != nil {
		h.writeError(w, err, "ListShortletListings")
		return
	}

	if err := httputil.WriteSuccess(w, "Shortlet listings retrieved successfully", listings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListShortletListings", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) UpdateShortletListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var input model.ShortletListingInput
	if !h.decode(w, r, &input, "UpdateShortletListing") {
		return
	}

	updated, err := h.service.UpdateShortletListing(r.Context(), ps.ByName("id"), identity.UserID, &input)
	if err != nil {
		h.writeError(w, err, "UpdateShortletListing")
		return
	}

	if err := httputil.WriteSuccess(w, "Shortlet listing updated successfully", updated); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateShortletListing", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) DeleteShortletListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	if err := h.service.DeleteShortletListing(r.Context(), ps.ByName("id"), identity.UserID); err != nil {
		h.writeError(w, err, "DeleteShortletListing")
		return
	}

	if err := httputil.WriteSuccess(w, "Shortlet listing deleted successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "DeleteShortletListing", "operation", "WriteSuccess", "error", err)
	}
}

// parseFlag reads the original API's 0/1 query flags; true/false are accepted
// too. Anything else leaves the flag out of the filter.
func parseFlag(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true":
		v := true
		return &v
	case "0", "false":
		v := false
		return &v
	}
	return nil
}

func (h *CatalogHandler) decode(w http.ResponseWriter, r *http.Request, target any, handlerName string) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), handlerName)
		return false
	}
	return true
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, err error, handlerName string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}
