// Package dto defines data transfer objects for the stocks feature's HTTP transport layer.
package dto

// CreateStockRequest represents the request body for the POST /stocks endpoint.
// It uses Gin's binding tags for validation; all four identifying fields are required.
type CreateStockRequest struct {
	Name           string `json:"name" binding:"required"`
	Ticker         string `json:"ticker" binding:"required"`
	ISIN           string `json:"isin" binding:"required"`
	IdentifierCode string `json:"identifier_code" binding:"required"`
}

// StockResponse は銘柄のレスポンスDTOです。
type StockResponse struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Ticker         string `json:"ticker"`
	ISIN           string `json:"isin"`
	IdentifierCode string `json:"identifier_code"`
}
