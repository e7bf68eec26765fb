package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/domain/models"
	"tourbook/internal/repositories"
	"tourbook/internal/services"
	"tourbook/internal/utils"
)

func normalizeGuide(g models.GuideApplication) models.GuideApplication {
	g.Name = utils.TrimOrEmpty(g.Name)
	g.Email = utils.NormalizeEmail(g.Email)
	g.Phone = utils.OnlyDigits(g.Phone)
	langs := make([]string, 0, len(g.Languages))
	for _, l := range g.Languages {
		if trimmed := utils.TrimOrEmpty(l); trimmed != "" {
			langs = append(langs, trimmed)
		}
	}
	g.Languages = langs
	return g
}

// GET /api/guides
func GetGuides(c *gin.Context) {
	out, err := repositories.GuideRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guides": out})
}

// POST /api/guides
func CreateGuide(c *gin.Context) {
	var g models.GuideApplication
	if !BindJSONOrError(c, &g) {
		return
	}
	g = normalizeGuide(g)
	if errs := services.ValidateGuide(g); errs.HasErrors() {
		RespondDomainError(c, errs)
		return
	}
	id, err := repositories.GuideRepository{}.Insert(g)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/guides/:id
func UpdateGuide(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var g models.GuideApplication
	if !BindJSONOrError(c, &g) {
		return
	}
	g = normalizeGuide(g)
	g.ID = id
	if errs := services.ValidateGuide(g); errs.HasErrors() {
		RespondDomainError(c, errs)
		return
	}
	if err := (repositories.GuideRepository{}).Update(g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "guide not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/guides/:id
func DeleteGuide(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := (repositories.GuideRepository{}).Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "guide not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
