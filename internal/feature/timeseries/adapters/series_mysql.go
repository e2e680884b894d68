// Package adapters はtimeseriesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	stocksadapters "financeviews/internal/feature/stocks/adapters"
	"financeviews/internal/feature/timeseries/domain/entity"
	"financeviews/internal/feature/timeseries/usecase"
)

// insertBatchSize は1回のINSERTにまとめる行数です。取り込みは銘柄あたり数百行を
// 生成するため、行ごとのラウンドトリップではなくバッチで書き込みます。
const insertBatchSize = 500

// mysqlErrFKViolation はMySQLの外部キー制約違反（1452）のエラー番号です。
const mysqlErrFKViolation = 1452

// seriesMySQL はSeriesRepositoryインターフェースのMySQL実装です。
type seriesMySQL struct {
	db *gorm.DB
}

// seriesMySQLがSeriesRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SeriesRepository = (*seriesMySQL)(nil)

// NewSeriesRepository は指定されたgorm.DB接続でseriesMySQLリポジトリの新しいインスタンスを生成します。
func NewSeriesRepository(db *gorm.DB) *seriesMySQL {
	return &seriesMySQL{db: db}
}

// StockTsModel は観測値テーブルのGORMモデルです。
// 親銘柄への外部キーはON DELETE CASCADEで、銘柄の削除は系列ごと削除します。
type StockTsModel struct {
	ID      uint64          `gorm:"primaryKey;autoIncrement:false"`
	StockID uint64          `gorm:"not null;index"`
	Date    time.Time       `gorm:"not null"`
	Open    decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Close   decimal.Decimal `gorm:"type:decimal(20,8);not null"`

	Stock stocksadapters.StockModel `gorm:"foreignKey:StockID;constraint:OnDelete:CASCADE"`
}

func (StockTsModel) TableName() string {
	return "stock_ts"
}

func toModel(e entity.StockTs) StockTsModel {
	return StockTsModel{
		ID:      e.ID,
		StockID: e.StockID,
		Date:    e.Date,
		Open:    e.Open,
		Close:   e.Close,
	}
}

func toEntity(m StockTsModel) entity.StockTs {
	return entity.StockTs{
		ID:      m.ID,
		StockID: m.StockID,
		Date:    m.Date,
		Open:    m.Open,
		Close:   m.Close,
	}
}

func toEntities(ms []StockTsModel) []entity.StockTs {
	out := make([]entity.StockTs, 0, len(ms))
	for _, m := range ms {
		out = append(out, toEntity(m))
	}
	return out
}

// SaveAll はバッチ全体を1トランザクションで挿入します。
// 参照先の銘柄が1つでも未永続であれば、バッチ全体をErrReferentialIntegrityで拒否します。
// 部分コミットは発生しません。
func (r *seriesMySQL) SaveAll(ctx context.Context, ts []entity.StockTs) error {
	if len(ts) == 0 {
		return nil
	}

	ms := make([]StockTsModel, 0, len(ts))
	for _, e := range ts {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 所有銘柄が同一トランザクション内で可視であることを確認する。
		// 外部キー制約はバックストップで、主経路はこの明示チェック。
		seen := map[uint64]struct{}{}
		ids := make([]uint64, 0, 4)
		for _, m := range ms {
			if _, ok := seen[m.StockID]; ok {
				continue
			}
			seen[m.StockID] = struct{}{}
			ids = append(ids, m.StockID)
		}

		var n int64
		if err := tx.Model(&stocksadapters.StockModel{}).
			Where("id IN ?", ids).
			Count(&n).Error; err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return usecase.ErrReferentialIntegrity
		}

		if err := tx.CreateInBatches(&ms, insertBatchSize).Error; err != nil {
			var mysqlErr *mysql.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrFKViolation {
				return usecase.ErrReferentialIntegrity
			}
			return err
		}
		return nil
	})
}

// FindByStockName は親銘柄の表示名が一致する観測値をすべて返します。
// 結果は銘柄単位にまとまります。日付順は保証しません。
func (r *seriesMySQL) FindByStockName(ctx context.Context, name string) ([]entity.StockTs, error) {
	var rows []StockTsModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN stocks ON stocks.id = stock_ts.stock_id").
		Where("stocks.name = ?", name).
		Order("stock_ts.stock_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// FindByStockTicker は親銘柄のティッカーが一致する観測値をすべて返します。
func (r *seriesMySQL) FindByStockTicker(ctx context.Context, ticker string) ([]entity.StockTs, error) {
	var rows []StockTsModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN stocks ON stocks.id = stock_ts.stock_id").
		Where("stocks.ticker = ?", ticker).
		Order("stock_ts.stock_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// List はID昇順で観測値をページ単位に返します。
func (r *seriesMySQL) List(ctx context.Context, limit, offset int) ([]entity.StockTs, error) {
	var rows []StockTsModel
	q := r.db.WithContext(ctx).Order("id ASC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}
