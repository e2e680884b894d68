// Package handler はtimeseriesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"financeviews/internal/feature/timeseries/domain/entity"
	"financeviews/internal/feature/timeseries/transport/http/dto"
)

// SeriesUsecase は時系列データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SeriesUsecase interface {
	FindByStockName(ctx context.Context, name string) ([]entity.StockTs, error)
	FindByStockTicker(ctx context.Context, ticker string) ([]entity.StockTs, error)
	List(ctx context.Context, limit, offset int) ([]entity.StockTs, error)
}

// SeriesHandler は時系列データのHTTPリクエストを処理します。
type SeriesHandler struct {
	uc SeriesUsecase
}

// NewSeriesHandler は指定されたusecaseでSeriesHandlerの新しいインスタンスを生成します。
func NewSeriesHandler(uc SeriesUsecase) *SeriesHandler {
	return &SeriesHandler{uc: uc}
}

// GetData は観測値を取得するAPIです。銘柄名またはティッカーで絞り込みます。
//
// エンドポイント例:
// GET /data?ticker=MSFT
// GET /data?name=Microsoft%20Corp.
// GET /data?limit=200&offset=0
func (h *SeriesHandler) GetData(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		series []entity.StockTs
		err    error
	)
	switch {
	case c.Query("name") != "":
		series, err = h.uc.FindByStockName(ctx, c.Query("name"))
	case c.Query("ticker") != "":
		series, err = h.uc.FindByStockTicker(ctx, c.Query("ticker"))
	default:
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		series, err = h.uc.List(ctx, limit, offset)
	}
	if err != nil {
		slog.Error("failed to fetch observations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch observations"})
		return
	}

	// データをフォーマット
	out := make([]dto.ObservationResponse, 0, len(series))
	for _, x := range series {
		out = append(out, dto.ObservationResponse{
			ID:      x.ID,
			StockID: x.StockID,
			Date:    x.Date.UTC().Format("2006-01-02"),
			Open:    x.Open.String(),
			Close:   x.Close.String(),
		})
	}

	c.JSON(http.StatusOK, out)
}
