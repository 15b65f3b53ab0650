package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/storefront-api/pkg/response"
	"github.com/oksasatya/storefront-api/pkg/validation"
)

const msgInvalidInput = "Invalid input"

// bindJSON decodes and validates the body; on failure it writes a 400 with
// field details and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	validation.Init()
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, msgInvalidInput, validation.ToDetails(err))
		return false
	}
	return true
}

// decodeJSON only decodes, for handlers that check the id before validating.
func decodeJSON(c *gin.Context, dst any) bool {
	if err := json.NewDecoder(c.Request.Body).Decode(dst); err != nil {
		response.Error(c, http.StatusBadRequest, msgInvalidInput, validation.ToDetails(err))
		return false
	}
	return true
}

func validate(c *gin.Context, obj any) bool {
	if err := validation.Struct(obj); err != nil {
		response.Error(c, http.StatusBadRequest, msgInvalidInput, validation.ToDetails(err))
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter. Values below floor or
// that are not base-10 integers produce a 400 and false.
func queryInt(c *gin.Context, name string, def, floor int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, msgInvalidInput, map[string]string{name: "must be an integer"})
		return 0, false
	}
	if n < floor {
		response.Error(c, http.StatusBadRequest, msgInvalidInput, map[string]string{name: "must be at least " + strconv.Itoa(floor)})
		return 0, false
	}
	return n, true
}
