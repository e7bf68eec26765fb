package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourbook/internal/domain/models"
	"tourbook/internal/repositories"
	"tourbook/internal/services"
	"tourbook/internal/utils"
)

// GET /api/packages
func GetPackages(c *gin.Context) {
	repo := repositories.PackageRepository{}
	out, err := repo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": out})
}

// packageDetail attaches the offer and its display-only discounted price
// when the offer window covers today. Booking pricing never sees this.
func packageDetail(pkg models.Package) models.PackageDetail {
	detail := models.PackageDetail{Package: pkg}
	if pkg.OfferID == nil {
		return detail
	}
	offer, err := repositories.OfferRepository{}.GetByID(*pkg.OfferID)
	if err != nil {
		return detail
	}
	detail.Offer = &offer

	from, errFrom := utils.ParseDate(offer.ValidFrom)
	to, errTo := utils.ParseDate(offer.ValidTo)
	if errFrom != nil || errTo != nil {
		return detail
	}
	today := utils.StartOfDay(time.Now())
	if today.Before(from) || today.After(to) {
		return detail
	}
	discounted := pkg.Price * (1 - offer.DiscountPercent/100)
	detail.DiscountedPrice = &discounted
	return detail
}

// GET /api/packages/:id
func GetPackageByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	pkg, err := repositories.PackageRepository{}.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "package not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": packageDetail(pkg)})
}

// POST /api/packages
func CreatePackage(c *gin.Context) {
	var pkg models.Package
	if !BindJSONOrError(c, &pkg) {
		return
	}
	if errs := services.ValidatePackage(pkg); errs.HasErrors() {
		RespondDomainError(c, errs)
		return
	}
	if pkg.Currency == "" {
		pkg.Currency = "USD"
	}
	id, err := repositories.PackageRepository{}.Insert(pkg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/packages/:id
func UpdatePackage(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var pkg models.Package
	if !BindJSONOrError(c, &pkg) {
		return
	}
	pkg.ID = id
	if errs := services.ValidatePackage(pkg); errs.HasErrors() {
		RespondDomainError(c, errs)
		return
	}
	if err := (repositories.PackageRepository{}).Update(pkg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "package not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/packages/:id
func DeletePackage(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := (repositories.PackageRepository{}).Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "package not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
