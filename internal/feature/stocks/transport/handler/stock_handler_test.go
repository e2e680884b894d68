package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"financeviews/internal/feature/stocks/domain/entity"
	"financeviews/internal/feature/stocks/usecase"
)

// mockStockUsecase はStockUsecaseインターフェースのモック実装です。
type mockStockUsecase struct {
	CreateFunc       func(ctx context.Context, name, ticker, isin, identifierCode string) (*entity.Stock, error)
	FindByNameFunc   func(ctx context.Context, name string) ([]entity.Stock, error)
	FindByTickerFunc func(ctx context.Context, ticker string) ([]entity.Stock, error)
	ListFunc         func(ctx context.Context, limit, offset int) ([]entity.Stock, error)
}

func (m *mockStockUsecase) Create(ctx context.Context, name, ticker, isin, identifierCode string) (*entity.Stock, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name, ticker, isin, identifierCode)
	}
	return &entity.Stock{ID: 1, Name: name, Ticker: ticker, ISIN: isin, IdentifierCode: identifierCode}, nil
}

func (m *mockStockUsecase) FindByName(ctx context.Context, name string) ([]entity.Stock, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockStockUsecase) FindByTicker(ctx context.Context, ticker string) ([]entity.Stock, error) {
	if m.FindByTickerFunc != nil {
		return m.FindByTickerFunc(ctx, ticker)
	}
	return nil, nil
}

func (m *mockStockUsecase) List(ctx context.Context, limit, offset int) ([]entity.Stock, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return nil, nil
}

func setupRouter(h *StockHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/stocks", h.Create)
	r.GET("/stocks", h.List)
	return r
}

// TestStockHandler_Create はCreateハンドラーの各種シナリオをテーブル駆動テストで検証します。
func TestStockHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockCreateFunc func(ctx context.Context, name, ticker, isin, identifierCode string) (*entity.Stock, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: stock is created",
			body: `{"name":"Microsoft Corp.","ticker":"MSFT","isin":"US5949181045","identifier_code":"594918104"}`,
			mockCreateFunc: func(ctx context.Context, name, ticker, isin, identifierCode string) (*entity.Stock, error) {
				return &entity.Stock{ID: 101, Name: name, Ticker: ticker, ISIN: isin, IdentifierCode: identifierCode}, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":101,"name":"Microsoft Corp.","ticker":"MSFT","isin":"US5949181045","identifier_code":"594918104"}`,
		},
		{
			name:           "failure: malformed JSON returns 400",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "failure: missing required field returns 400",
			body:           `{"name":"Microsoft Corp.","ticker":"MSFT","isin":"US5949181045"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name: "failure: usecase validation error returns 400",
			body: `{"name":" ","ticker":"MSFT","isin":"US5949181045","identifier_code":"594918104"}`,
			mockCreateFunc: func(ctx context.Context, name, ticker, isin, identifierCode string) (*entity.Stock, error) {
				return nil, usecase.ErrValidation
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"required field is empty"}`,
		},
		{
			name: "failure: storage error returns 500",
			body: `{"name":"Microsoft Corp.","ticker":"MSFT","isin":"US5949181045","identifier_code":"594918104"}`,
			mockCreateFunc: func(ctx context.Context, name, ticker, isin, identifierCode string) (*entity.Stock, error) {
				return nil, errors.New("database connection failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to create stock"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockStockUsecase{CreateFunc: tt.mockCreateFunc}
			router := setupRouter(NewStockHandler(mockUC))

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/stocks", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestStockHandler_List はListハンドラーのクエリ分岐を検証します。
func TestStockHandler_List(t *testing.T) {
	sample := []entity.Stock{
		{ID: 1, Name: "Microsoft Corp.", Ticker: "MSFT", ISIN: "US5949181045", IdentifierCode: "594918104"},
	}
	sampleJSON := `[{"id":1,"name":"Microsoft Corp.","ticker":"MSFT","isin":"US5949181045","identifier_code":"594918104"}]`

	tests := []struct {
		name           string
		url            string
		mock           *mockStockUsecase
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: list without filters",
			url:  "/stocks",
			mock: &mockStockUsecase{
				ListFunc: func(ctx context.Context, limit, offset int) ([]entity.Stock, error) {
					return sample, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   sampleJSON,
		},
		{
			name: "success: find by name",
			url:  "/stocks?name=Microsoft%20Corp.",
			mock: &mockStockUsecase{
				FindByNameFunc: func(ctx context.Context, name string) ([]entity.Stock, error) {
					if name != "Microsoft Corp." {
						return nil, errors.New("unexpected name: " + name)
					}
					return sample, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   sampleJSON,
		},
		{
			name: "success: find by ticker",
			url:  "/stocks?ticker=MSFT",
			mock: &mockStockUsecase{
				FindByTickerFunc: func(ctx context.Context, ticker string) ([]entity.Stock, error) {
					if ticker != "MSFT" {
						return nil, errors.New("unexpected ticker: " + ticker)
					}
					return sample, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   sampleJSON,
		},
		{
			name: "success: no match returns empty list",
			url:  "/stocks?ticker=NONE",
			mock: &mockStockUsecase{
				FindByTickerFunc: func(ctx context.Context, ticker string) ([]entity.Stock, error) {
					return []entity.Stock{}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "failure: usecase error returns 500",
			url:  "/stocks",
			mock: &mockStockUsecase{
				ListFunc: func(ctx context.Context, limit, offset int) ([]entity.Stock, error) {
					return nil, errors.New("database connection failed")
				},
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to list stocks"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(NewStockHandler(tt.mock))

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestStockHandler_List_PaginationPassthrough はlimitとoffsetがusecaseへ渡ることを検証します。
func TestStockHandler_List_PaginationPassthrough(t *testing.T) {
	var gotLimit, gotOffset int
	mockUC := &mockStockUsecase{
		ListFunc: func(ctx context.Context, limit, offset int) ([]entity.Stock, error) {
			gotLimit, gotOffset = limit, offset
			return []entity.Stock{}, nil
		},
	}
	router := setupRouter(NewStockHandler(mockUC))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/stocks?limit=25&offset=75", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25, gotLimit)
	assert.Equal(t, 75, gotOffset)
}
