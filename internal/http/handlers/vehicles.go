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

func normalizeVehicle(v models.Vehicle) models.Vehicle {
	v.PlateNo = strings.ToUpper(utils.TrimOrEmpty(v.PlateNo))
	v.Type = strings.ToLower(utils.TrimOrEmpty(v.Type))
	v.Model = utils.TrimOrEmpty(v.Model)
	return v
}

// GET /api/vehicles
func GetVehicles(c *gin.Context) {
	out, err := repositories.VehicleRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": out})
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var v models.Vehicle
	if !BindJSONOrError(c, &v) {
		return
	}
	v = normalizeVehicle(v)
	if errs := services.ValidateVehicle(v); errs.HasErrors() {
		RespondDomainError(c, errs)
		return
	}
	id, err := repositories.VehicleRepository{}.Insert(v)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var v models.Vehicle
	if !BindJSONOrError(c, &v) {
		return
	}
	v = normalizeVehicle(v)
	v.ID = id
	if errs := services.ValidateVehicle(v); errs.HasErrors() {
		RespondDomainError(c, errs)
		return
	}
	if err := (repositories.VehicleRepository{}).Update(v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "vehicle not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := (repositories.VehicleRepository{}).Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "vehicle not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
