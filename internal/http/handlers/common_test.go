package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T, method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestParamIDRejectsGarbage(t *testing.T) {
	c, w := testContext(t, http.MethodGet, "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, ok := ParamID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, _ = testContext(t, http.MethodGet, "")
	c.Params = gin.Params{{Key: "id", Value: "17"}}
	id, ok := ParamID(c)
	assert.True(t, ok)
	assert.Equal(t, domain.ID(17), id)
}

func TestBindAssignmentPatchDetectsGuideKey(t *testing.T) {
	// Explicit null clears the guide; the key's presence must be seen.
	c, _ := testContext(t, http.MethodPatch, `{"assigned_guide_id": null}`)
	patch, ok := bindAssignmentPatch(c)
	require.True(t, ok)
	assert.True(t, patch.GuideSet)
	assert.Nil(t, patch.GuideID)

	// Absent key leaves the guide untouched.
	c, _ = testContext(t, http.MethodPatch, `{"assignment_notes": "call ahead"}`)
	patch, ok = bindAssignmentPatch(c)
	require.True(t, ok)
	assert.False(t, patch.GuideSet)
	require.NotNil(t, patch.Notes)
	assert.Equal(t, "call ahead", *patch.Notes)

	// Present with a value sets it.
	c, _ = testContext(t, http.MethodPatch, `{"assigned_guide_id": 4, "assigned_vehicle_ids": [1,2]}`)
	patch, ok = bindAssignmentPatch(c)
	require.True(t, ok)
	assert.True(t, patch.GuideSet)
	require.NotNil(t, patch.GuideID)
	assert.Equal(t, domain.ID(4), *patch.GuideID)
	require.NotNil(t, patch.VehicleIDs)
	assert.Equal(t, []domain.ID{1, 2}, *patch.VehicleIDs)
}

func TestRespondDomainErrorShipsFieldMap(t *testing.T) {
	c, w := testContext(t, http.MethodPost, "")
	errs := domain.FieldErrors{}
	errs.Add("qty", "qty must be at least 1")
	errs.Add("customer.email", "valid email is required")
	RespondDomainError(c, errs)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Code   string            `json:"code"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Code)
	assert.Len(t, body.Errors, 2)
	assert.Equal(t, "qty must be at least 1", body.Errors["qty"])
	assert.Equal(t, "valid email is required", body.Errors["customer.email"])
}

func TestRespondDomainErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.NotFoundError{Resource: "booking"}, http.StatusNotFound},
		{domain.ForbiddenError{}, http.StatusForbidden},
		{domain.ValidationError{Field: "from"}, http.StatusBadRequest},
		{domain.ConflictError{Resource: "offer"}, http.StatusConflict},
		{domain.InternalError{}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, w := testContext(t, http.MethodGet, "")
		RespondDomainError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, "for %T", tc.err)
	}
}
