// Package handler はstocksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"financeviews/internal/feature/stocks/domain/entity"
	"financeviews/internal/feature/stocks/transport/http/dto"
	"financeviews/internal/feature/stocks/usecase"
)

// StockUsecase は銘柄カタログ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StockUsecase interface {
	Create(ctx context.Context, name, ticker, isin, identifierCode string) (*entity.Stock, error)
	FindByName(ctx context.Context, name string) ([]entity.Stock, error)
	FindByTicker(ctx context.Context, ticker string) ([]entity.Stock, error)
	List(ctx context.Context, limit, offset int) ([]entity.Stock, error)
}

// StockHandler は銘柄カタログのHTTPリクエストを処理します。
type StockHandler struct {
	uc StockUsecase
}

// NewStockHandler は指定されたusecaseでStockHandlerの新しいインスタンスを生成します。
func NewStockHandler(uc StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create は新しい銘柄を登録するAPIです。
//
// エンドポイント例:
// POST /stocks
func (h *StockHandler) Create(c *gin.Context) {
	var req dto.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("stock creation validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	s, err := h.uc.Create(c.Request.Context(), req.Name, req.Ticker, req.ISIN, req.IdentifierCode)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("failed to create stock", "ticker", req.Ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create stock"})
		return
	}

	c.JSON(http.StatusCreated, toResponse(*s))
}

// List は銘柄一覧を取得するAPIです。nameまたはtickerクエリで完全一致検索になります。
//
// エンドポイント例:
// GET /stocks?ticker=MSFT
// GET /stocks?limit=50&offset=0
func (h *StockHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		stocks []entity.Stock
		err    error
	)
	switch {
	case c.Query("name") != "":
		stocks, err = h.uc.FindByName(ctx, c.Query("name"))
	case c.Query("ticker") != "":
		stocks, err = h.uc.FindByTicker(ctx, c.Query("ticker"))
	default:
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		stocks, err = h.uc.List(ctx, limit, offset)
	}
	if err != nil {
		slog.Error("failed to list stocks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list stocks"})
		return
	}

	out := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, toResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

func toResponse(s entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		ID:             s.ID,
		Name:           s.Name,
		Ticker:         s.Ticker,
		ISIN:           s.ISIN,
		IdentifierCode: s.IdentifierCode,
	}
}
