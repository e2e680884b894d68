package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"financeviews/internal/shared/idgen"
)

// SequenceModel は識別子範囲の予約に使う単調カウンタの行です。
// nextは次に払い出し可能な識別子で、予約のたびにバッチ分だけ前進します。
// プロセス再起動で未使用分が残っても巻き戻さないため、IDは単調ですが連続しません。
type SequenceModel struct {
	Name string `gorm:"primaryKey;size:64"`
	Next uint64 `gorm:"not null;default:1"`
}

func (SequenceModel) TableName() string {
	return "sequences"
}

// sequenceGorm はRangeReserverインターフェースのデータベース実装です。
type sequenceGorm struct {
	db *gorm.DB
}

// sequenceGormがRangeReserverを実装していることをコンパイル時に検証します。
var _ idgen.RangeReserver = (*sequenceGorm)(nil)

// NewSequenceReserver は指定されたgorm.DB接続でsequenceGormの新しいインスタンスを生成します。
func NewSequenceReserver(db *gorm.DB) *sequenceGorm {
	return &sequenceGorm{db: db}
}

// Reserve は名前付きカウンタから [start, start+n) の範囲を予約します。
// 先にUPDATEで行ロックを取ってから読み戻すため、並行する予約が重なることはありません。
func (r *sequenceGorm) Reserve(ctx context.Context, name string, n uint64) (uint64, error) {
	var start uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&SequenceModel{}).
			Where("name = ?", name).
			UpdateColumn("next", gorm.Expr("next + ?", n))
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// 初回予約。カウンタ行を作成する。
			row := SequenceModel{Name: name, Next: 1 + n}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create sequence %q: %w", name, err)
			}
			start = 1
			return nil
		}

		var row SequenceModel
		if err := tx.Where("name = ?", name).First(&row).Error; err != nil {
			return err
		}
		if row.Next < n {
			return errors.New("sequence counter wrapped around")
		}
		start = row.Next - n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return start, nil
}
