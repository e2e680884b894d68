// Package dto defines data transfer objects for the timeseries feature's HTTP transport layer.
package dto

// ObservationResponse は日次観測値のレスポンスDTOです。
// 価格は浮動小数点の丸めを避けるため10進文字列で返します。
type ObservationResponse struct {
	ID      uint64 `json:"id"`
	StockID uint64 `json:"stock_id"` // 親銘柄のID
	Date    string `json:"date"`     // 日付（YYYY-MM-DD）
	Open    string `json:"open"`     // 始値
	Close   string `json:"close"`    // 終値
}
