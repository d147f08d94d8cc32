package http

import (
	"crypto-pnl/internal/dto"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupPnL(base *echo.Group) {
	v1 := base.Group("/v1/pnl")
	{
		v1.POST("", h.computePnL)
		v1.GET("/reports", h.listReports)
		v1.GET("/chart", h.chartData)
	}
}

func (h *HttpAPIHandler) computePnL(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.PnLRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	summary, err := h.service.PnLService.ComputeAndStore(ctx, req.Pair, req.StartDate, req.EndDate)
	if err != nil {
		if errors.Is(err, dto.ErrMalformedPair) {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
		}
		return c.JSON(http.StatusBadGateway,
			dto.NewBaseResponse(http.StatusBadGateway, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Profit/loss summary computed", summary))
}

func (h *HttpAPIHandler) listReports(c echo.Context) error {
	ctx := c.Request().Context()

	symbol := c.QueryParam("symbol")
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid limit"))
		}
		limit = parsed
	}

	reports, err := h.service.PnLService.GetReports(ctx, symbol, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			dto.NewBaseResponse(http.StatusInternalServerError, "failed to list reports", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Reports", reports))
}

func (h *HttpAPIHandler) chartData(c echo.Context) error {
	ctx := c.Request().Context()

	req := dto.ChartRequest{
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}
	if raw := c.QueryParam("symbols"); raw != "" {
		req.Symbols = strings.Split(raw, ",")
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	data, err := h.service.ChartService.GetChartData(ctx, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			dto.NewBaseResponse(http.StatusInternalServerError, "failed to build chart data", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Chart data", data))
}
