// Package usecase はstocksフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"financeviews/internal/feature/stocks/domain/entity"
)

// defaultListLimit はページ指定がない場合の1ページあたりの件数です。
const defaultListLimit = 50

// StockRepository は銘柄エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type StockRepository interface {
	// Create は新しい銘柄をストレージに永続化します。
	Create(ctx context.Context, s *entity.Stock) error

	// FindByName は表示名が完全一致する銘柄をすべて返します。該当なしの場合は空スライスを返します。
	FindByName(ctx context.Context, name string) ([]entity.Stock, error)

	// FindByTicker はティッカーが完全一致する銘柄をすべて返します。該当なしの場合は空スライスを返します。
	FindByTicker(ctx context.Context, ticker string) ([]entity.Stock, error)

	// List はID昇順で銘柄をページ単位に返します。
	List(ctx context.Context, limit, offset int) ([]entity.Stock, error)
}

// IDAllocator は未発行の主キーを払い出します。
type IDAllocator interface {
	Next(ctx context.Context) (uint64, error)
}

// StockUsecase は銘柄カタログのビジネスロジックを実装します。
type StockUsecase struct {
	repo StockRepository
	ids  IDAllocator
}

// NewStockUsecase は新しいStockUsecaseを生成します。
func NewStockUsecase(repo StockRepository, ids IDAllocator) *StockUsecase {
	return &StockUsecase{repo: repo, ids: ids}
}

// Create は4つの必須フィールドを検証し、識別子を割り当てて銘柄を永続化します。
// いずれかのフィールドが空の場合はErrValidationを返し、ストレージは変更されません。
// ティッカーの一意性は強制しません。ソースのダンプは重複を含みうるため、重複行は許容されます。
func (u *StockUsecase) Create(ctx context.Context, name, ticker, isin, identifierCode string) (*entity.Stock, error) {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", name},
		{"ticker", ticker},
		{"isin", isin},
		{"identifierCode", identifierCode},
	} {
		if f.value == "" {
			return nil, fmt.Errorf("%w: %s", ErrValidation, f.name)
		}
	}

	id, err := u.ids.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate stock id: %w", err)
	}

	s := &entity.Stock{
		ID:             id,
		Name:           name,
		Ticker:         ticker,
		ISIN:           isin,
		IdentifierCode: identifierCode,
	}
	if err := u.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// FindByName は表示名が完全一致する銘柄を返します。
func (u *StockUsecase) FindByName(ctx context.Context, name string) ([]entity.Stock, error) {
	return u.repo.FindByName(ctx, name)
}

// FindByTicker はティッカーが完全一致する銘柄を返します。
func (u *StockUsecase) FindByTicker(ctx context.Context, ticker string) ([]entity.Stock, error) {
	return u.repo.FindByTicker(ctx, ticker)
}

// List は銘柄をページ単位に返します。limitが0以下の場合はデフォルト値を使用します。
func (u *StockUsecase) List(ctx context.Context, limit, offset int) ([]entity.Stock, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return u.repo.List(ctx, limit, offset)
}
