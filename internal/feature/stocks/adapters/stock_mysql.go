// Package adapters はstocksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"financeviews/internal/feature/stocks/domain/entity"
	"financeviews/internal/feature/stocks/usecase"
)

// stockMySQL はStockRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type stockMySQL struct {
	db *gorm.DB
}

// stockMySQLがStockRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.StockRepository = (*stockMySQL)(nil)

// NewStockRepository は指定されたgorm.DB接続でstockMySQLリポジトリの新しいインスタンスを生成します。
func NewStockRepository(db *gorm.DB) *stockMySQL {
	return &stockMySQL{db: db}
}

// StockModel は銘柄テーブルのGORMモデルです。
// 主キーはアロケータが割り当てるため、autoIncrementは使用しません。
// ティッカーにユニーク制約はありません。ダンプ由来の重複は許容されます。
type StockModel struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement:false"`
	Name           string `gorm:"size:255;not null;index"`
	Ticker         string `gorm:"size:32;not null;index"`
	ISIN           string `gorm:"size:64;not null"`
	IdentifierCode string `gorm:"size:64;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (StockModel) TableName() string {
	return "stocks"
}

func toModel(e *entity.Stock) StockModel {
	return StockModel{
		ID:             e.ID,
		Name:           e.Name,
		Ticker:         e.Ticker,
		ISIN:           e.ISIN,
		IdentifierCode: e.IdentifierCode,
	}
}

func toEntity(m StockModel) entity.Stock {
	return entity.Stock{
		ID:             m.ID,
		Name:           m.Name,
		Ticker:         m.Ticker,
		ISIN:           m.ISIN,
		IdentifierCode: m.IdentifierCode,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toEntities(ms []StockModel) []entity.Stock {
	out := make([]entity.Stock, 0, len(ms))
	for _, m := range ms {
		out = append(out, toEntity(m))
	}
	return out
}

// Create は銘柄を1件永続化します。呼び出しごとに独立した書き込みです。
func (r *stockMySQL) Create(ctx context.Context, s *entity.Stock) error {
	m := toModel(s)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	s.CreatedAt = m.CreatedAt
	s.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByName は表示名が完全一致する銘柄をすべて返します。
func (r *stockMySQL) FindByName(ctx context.Context, name string) ([]entity.Stock, error) {
	var rows []StockModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// FindByTicker はティッカーが完全一致する銘柄をすべて返します。
func (r *stockMySQL) FindByTicker(ctx context.Context, ticker string) ([]entity.Stock, error) {
	var rows []StockModel
	if err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// List はID昇順で銘柄をページ単位に返します。
func (r *stockMySQL) List(ctx context.Context, limit, offset int) ([]entity.Stock, error) {
	var rows []StockModel
	q := r.db.WithContext(ctx).Order("id ASC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}
