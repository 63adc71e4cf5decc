package handler

import (
	"errors"
	"net/http"

	"github.com/danielalasn/pivot/internal/market"
	"github.com/danielalasn/pivot/internal/util"

	"github.com/gin-gonic/gin"
)

// MarketHandler exposes the price gateway: quotes, historical series,
// ticker validation and the manual cache refresh.
type MarketHandler struct {
	Gateway *market.Gateway
}

func NewMarketHandler(gateway *market.Gateway) *MarketHandler {
	return &MarketHandler{Gateway: gateway}
}

// Quote returns the cached-or-fresh snapshot for :ticker.
func (h *MarketHandler) Quote(c *gin.Context) {
	ticker := c.Param("ticker")
	if err := util.ValidateTicker(ticker); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	snap, err := h.Gateway.Snapshot(c.Request.Context(), ticker)
	if err != nil {
		if errors.Is(err, market.ErrProvider) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "no data for "+ticker)
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, err.Error())
		}
		return
	}
	util.Success(c, util.Response{"quote": snap, "news": snap.News()})
}

// Historical returns the closing series for ?period (1D..5Y).
func (h *MarketHandler) Historical(c *gin.Context) {
	ticker := c.Param("ticker")
	if err := util.ValidateTicker(ticker); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	period := c.DefaultQuery("period", "1Y")
	points, err := h.Gateway.Historical(c.Request.Context(), ticker, period)
	if err != nil {
		switch {
		case errors.Is(err, market.ErrUnknownPeriod):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		case errors.Is(err, market.ErrProvider):
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "no historical data for "+ticker)
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, err.Error())
		}
		return
	}
	util.Success(c, util.Response{"items": points})
}

// Validate answers whether a ticker resolves to a live price.
func (h *MarketHandler) Validate(c *gin.Context) {
	ticker := c.Param("ticker")
	if err := util.ValidateTicker(ticker); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	util.Success(c, util.Response{
		"ticker": ticker,
		"valid":  h.Gateway.IsValid(c.Request.Context(), ticker),
	})
}

// Refresh refetches every held ticker, bypassing the TTL.
func (h *MarketHandler) Refresh(c *gin.Context) {
	updated, err := h.Gateway.Refresh(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, err.Error())
		return
	}
	util.Success(c, util.Response{"refreshed": updated})
}

// Timestamp reports the most recent cache fetch time.
func (h *MarketHandler) Timestamp(c *gin.Context) {
	ts, err := h.Gateway.LastUpdated()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, err.Error())
		return
	}
	util.Success(c, util.Response{"last_updated": ts})
}
