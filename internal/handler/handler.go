package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/danielalasn/pivot/internal/service"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
)

// respondErr maps service errors to the HTTP envelope. Unknown errors
// surface as 500 with their message kept; storage failures must never
// be swallowed silently.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, service.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrConsistency):
		util.Error(c, http.StatusConflict, util.CodeConflict, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, err.Error())
	}
}

// parseID reads a positive numeric :id path parameter. On failure the
// response is already written and ok is false.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}
