package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"tourbook/internal/http/middleware"
	"tourbook/internal/repositories"
	"tourbook/internal/utils"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.UserRepository{}
	rec, err := repo.GetByEmail(utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
		return
	}

	token, err := middleware.SignToken(rec.User.ID, rec.User.Role)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": rec.User})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Name = utils.TrimOrEmpty(req.Name)
	req.Email = utils.NormalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		RespondError(c, http.StatusBadRequest, "name, email and a password of at least 8 characters are required", nil)
		return
	}

	repo := repositories.UserRepository{}
	if _, err := repo.GetByEmail(req.Email); err == nil {
		RespondError(c, http.StatusBadRequest, "email already registered", nil)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		RespondDomainError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", nil)
		return
	}

	id, err := repo.Insert(req.Name, req.Email, strings.TrimSpace(req.Phone), string(hash), "customer")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":    id,
			"name":  req.Name,
			"email": req.Email,
			"phone": strings.TrimSpace(req.Phone),
			"role":  "customer",
		},
	})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	rc := middleware.CurrentUser(c)
	repo := repositories.UserRepository{}
	user, err := repo.GetByID(rc.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "user not found", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
