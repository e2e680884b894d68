// Package entity defines the domain models for the timeseries feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTs represents one day's open/close price observation for a stock.
// Every observation is owned by exactly one stock; its lifetime is bounded
// by that stock (deleting the stock deletes its series).
type StockTs struct {
	ID      uint64          // Allocator-assigned primary key
	StockID uint64          // Owning stock, required
	Date    time.Time       // Calendar date of the observation
	Open    decimal.Decimal // Opening price, positive
	Close   decimal.Decimal // Closing price, positive
}
