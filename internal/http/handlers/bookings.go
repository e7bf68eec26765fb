package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/domain/models"
	"tourbook/internal/http/middleware"
	"tourbook/internal/services"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var in services.CreateBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	id, err := bookingService(c).Create(middleware.CurrentUser(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/bookings (admin)
func GetBookings(c *gin.Context) {
	out, err := bookingService(c).ListAll(middleware.CurrentUser(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /api/bookings/mine
func GetMyBookings(c *gin.Context) {
	out, err := bookingService(c).ListMine(middleware.CurrentUser(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	booking, err := bookingService(c).Get(middleware.CurrentUser(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// PATCH /api/bookings/:id
func PatchBooking(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var patch models.BookingPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	if err := bookingService(c).Update(middleware.CurrentUser(c), id, patch); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/bookings/:id
func DeleteBooking(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := bookingService(c).Delete(middleware.CurrentUser(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/bookings/:id/invoice
func GetBookingInvoicePDF(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	data, err := bookingService(c).Invoice(middleware.CurrentUser(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pdf, filename, err := services.BuildInvoicePDF(data)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// bindAssignmentPatch decodes an assignment payload while distinguishing
// "assigned_guide_id": null (clear the guide) from the key being absent.
func bindAssignmentPatch(c *gin.Context) (models.AssignmentPatch, bool) {
	var patch models.AssignmentPatch
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		RespondError(c, http.StatusBadRequest, "request body is required", err)
		return patch, false
	}
	if err := json.Unmarshal(body, &patch); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return patch, false
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return patch, false
	}
	_, patch.GuideSet = keys["assigned_guide_id"]
	return patch, true
}

func assignmentService(c *gin.Context) services.AssignmentService {
	return services.AssignmentService{RequestID: middleware.GetRequestID(c)}
}

// PATCH /api/bookings/:id/assignment (admin)
func PatchBookingAssignment(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	patch, ok := bindAssignmentPatch(c)
	if !ok {
		return
	}
	if err := assignmentService(c).UpdateBooking(middleware.CurrentUser(c), id, patch); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// GET /api/assignments/available?start=YYYY-MM-DD&end=YYYY-MM-DD (admin)
func GetAvailableAssignments(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		RespondError(c, http.StatusBadRequest, "start and end query parameters are required", nil)
		return
	}
	out, err := assignmentService(c).Available(middleware.CurrentUser(c), start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
