package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/domain/models"
	"tourbook/internal/http/middleware"
	"tourbook/internal/services"
)

func customPackageService(c *gin.Context) services.CustomPackageService {
	return services.CustomPackageService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/custom-packages
func CreateCustomPackage(c *gin.Context) {
	var cp models.CustomPackage
	if !BindJSONOrError(c, &cp) {
		return
	}
	id, err := customPackageService(c).Create(cp)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/custom-packages (admin)
func GetCustomPackages(c *gin.Context) {
	out, err := customPackageService(c).List(middleware.CurrentUser(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"custom_packages": out})
}

// GET /api/custom-packages/:id (admin)
func GetCustomPackageByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	cp, err := customPackageService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"custom_package": cp})
}

// PATCH /api/custom-packages/:id/assignment (admin)
func PatchCustomPackageAssignment(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	patch, ok := bindAssignmentPatch(c)
	if !ok {
		return
	}
	if err := assignmentService(c).UpdateCustomPackage(middleware.CurrentUser(c), id, patch); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/custom-packages/:id (admin)
func DeleteCustomPackage(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := customPackageService(c).Delete(middleware.CurrentUser(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
