package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tourbook/internal/domain/models"
	"tourbook/internal/repositories"
	"tourbook/internal/services"
	"tourbook/internal/utils"
)

func normalizeDriver(d models.Driver) models.Driver {
	d.Name = utils.TrimOrEmpty(d.Name)
	d.NIC = strings.ToUpper(utils.TrimOrEmpty(d.NIC))
	d.LicenseNo = utils.TrimOrEmpty(d.LicenseNo)
	d.Phone = utils.OnlyDigits(d.Phone)
	return d
}

// GET /api/drivers
func GetDrivers(c *gin.Context) {
	out, err := repositories.DriverRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": out})
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var d models.Driver
	if !BindJSONOrError(c, &d) {
		return
	}
	d = normalizeDriver(d)
	if errs := services.ValidateDriver(d); errs.HasErrors() {
		RespondDomainError(c, errs)
		return
	}
	id, err := repositories.DriverRepository{}.Insert(d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var d models.Driver
	if !BindJSONOrError(c, &d) {
		return
	}
	d = normalizeDriver(d)
	d.ID = id
	if errs := services.ValidateDriver(d); errs.HasErrors() {
		RespondDomainError(c, errs)
		return
	}
	if err := (repositories.DriverRepository{}).Update(d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "driver not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := (repositories.DriverRepository{}).Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "driver not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
