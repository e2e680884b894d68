package usecase

import (
	"github.com/google/uuid"

	"financeviews/internal/feature/ingestion/dump"
)

// Seed は1銘柄分の作成入力です。取り込み実行の作成ソース（ダンプ由来か合成か）は
// 設定で選択され、1回の実行ではどちらか一方のみを使用します。
type Seed struct {
	Name           string
	Ticker         string
	ISIN           string
	IdentifierCode string
}

// SeedsFromDump はダンプレコードを作成入力に変換します。
// ダンプに存在しない isin / identifierCode にはプレースホルダーのUUIDを割り当てます。
func SeedsFromDump(records []dump.Record) []Seed {
	seeds := make([]Seed, 0, len(records))
	for _, rec := range records {
		seeds = append(seeds, Seed{
			Name:           rec.CompanyName,
			Ticker:         rec.ActSymbol,
			ISIN:           uuid.NewString(),
			IdentifierCode: uuid.NewString(),
		})
	}
	return seeds
}

// SyntheticSeeds はダンプを使わずにn件のランダムな作成入力を生成します。
func SyntheticSeeds(n int) []Seed {
	seeds := make([]Seed, 0, n)
	for i := 0; i < n; i++ {
		seeds = append(seeds, Seed{
			Name:           uuid.NewString(),
			Ticker:         uuid.NewString(),
			ISIN:           uuid.NewString(),
			IdentifierCode: uuid.NewString(),
		})
	}
	return seeds
}
