package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/domain/models"
	"tourbook/internal/repositories"
	"tourbook/internal/services"
)

// GET /api/offers
func GetOffers(c *gin.Context) {
	out, err := repositories.OfferRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": out})
}

// GET /api/offers/:id
func GetOfferByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	offer, err := repositories.OfferRepository{}.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "offer not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": offer})
}

// POST /api/offers
func CreateOffer(c *gin.Context) {
	var offer models.Offer
	if !BindJSONOrError(c, &offer) {
		return
	}
	if errs := services.ValidateOffer(offer); errs.HasErrors() {
		RespondDomainError(c, errs)
		return
	}
	id, err := repositories.OfferRepository{}.Insert(offer)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/offers/:id
func UpdateOffer(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var offer models.Offer
	if !BindJSONOrError(c, &offer) {
		return
	}
	offer.ID = id
	if errs := services.ValidateOffer(offer); errs.HasErrors() {
		RespondDomainError(c, errs)
		return
	}
	if err := (repositories.OfferRepository{}).Update(offer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "offer not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/offers/:id
func DeleteOffer(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := (repositories.OfferRepository{}).Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "offer not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
