// Package handlers contains the gin HTTP handlers of the engine's REST API.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// dateLayout is the wire format for calendar dates in requests.
const dateLayout = "2006-01-02"

// parsePagination extracts page and page_size from query parameters.
func parsePagination(c *gin.Context) common.Pagination {
	page := common.Pagination{Page: 1, PageSize: 20}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= 100 {
		page.PageSize = v
	}
	return page
}

// parseDate parses an optional YYYY-MM-DD query or body value.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, errors.NewValidationError("invalid date " + value + "; expected YYYY-MM-DD")
	}
	return &t, nil
}

// writeError maps a coded error onto its HTTP status and the standard error
// envelope.
func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	c.JSON(code.HTTPStatus(), common.NewErrorResponse(string(code), err.Error()))
}

// writeOK writes a success envelope with 200.
func writeOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

// writeCreated writes a success envelope with 201.
func writeCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, common.NewSuccessResponse(data))
}

//Personal.AI order the ending
