// Package usecase はtimeseriesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"financeviews/internal/feature/timeseries/domain/entity"
)

// defaultListLimit はページ指定がない場合の1ページあたりの件数です。
const defaultListLimit = 200

// SeriesRepository は観測値エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type SeriesRepository interface {
	// SaveAll はバッチ全体を1つの論理操作として永続化します。
	// 全行が可視になるか、1行も書かれないかのどちらかです。
	SaveAll(ctx context.Context, ts []entity.StockTs) error

	// FindByStockName は親銘柄の表示名が一致する観測値をすべて返します。
	FindByStockName(ctx context.Context, name string) ([]entity.StockTs, error)

	// FindByStockTicker は親銘柄のティッカーが一致する観測値をすべて返します。
	FindByStockTicker(ctx context.Context, ticker string) ([]entity.StockTs, error)

	// List はID昇順で観測値をページ単位に返します。
	List(ctx context.Context, limit, offset int) ([]entity.StockTs, error)
}

// IDAllocator は未発行の主キーを払い出します。
type IDAllocator interface {
	Next(ctx context.Context) (uint64, error)
}

// SeriesUsecase は時系列ストアのビジネスロジックを実装します。
type SeriesUsecase struct {
	repo SeriesRepository
	ids  IDAllocator
}

// NewSeriesUsecase は新しいSeriesUsecaseを生成します。
func NewSeriesUsecase(repo SeriesRepository, ids IDAllocator) *SeriesUsecase {
	return &SeriesUsecase{repo: repo, ids: ids}
}

// SaveAll は未採番の観測値に識別子を割り当て、バッチ全体を永続化します。
// 割り当て済みのIDはそのまま使用します。
func (u *SeriesUsecase) SaveAll(ctx context.Context, ts []entity.StockTs) error {
	for i := range ts {
		if ts[i].ID != 0 {
			continue
		}
		id, err := u.ids.Next(ctx)
		if err != nil {
			return fmt.Errorf("allocate observation id: %w", err)
		}
		ts[i].ID = id
	}
	return u.repo.SaveAll(ctx, ts)
}

// FindByStockName は親銘柄の表示名が一致する観測値を返します。
// 銘柄単位のグルーピング以外の順序は保証しません。日付順は呼び出し側で適用します。
func (u *SeriesUsecase) FindByStockName(ctx context.Context, name string) ([]entity.StockTs, error) {
	return u.repo.FindByStockName(ctx, name)
}

// FindByStockTicker は親銘柄のティッカーが一致する観測値を返します。
func (u *SeriesUsecase) FindByStockTicker(ctx context.Context, ticker string) ([]entity.StockTs, error) {
	return u.repo.FindByStockTicker(ctx, ticker)
}

// List は観測値をページ単位に返します。limitが0以下の場合はデフォルト値を使用します。
func (u *SeriesUsecase) List(ctx context.Context, limit, offset int) ([]entity.StockTs, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return u.repo.List(ctx, limit, offset)
}
