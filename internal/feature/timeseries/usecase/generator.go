package usecase

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"financeviews/internal/feature/timeseries/domain/entity"
)

// closeFactor は始値から終値を導出する係数です。プレースホルダーの価格モデルであり、
// 金融的な意味はありません。
var closeFactor = decimal.RequireFromString("1.4")

var openScale = decimal.NewFromInt(10)

// RandSource は一様乱数 [0, 1) の供給源です。*rand.Rand がこれを満たします。
// 再現可能なテストのため、グローバルな乱数ではなく明示的に注入します。
type RandSource interface {
	Float64() float64
}

// SystemRand はパッケージグローバルの乱数源です。内部でロックされるため、
// 複数ゴルーチンから共有しても安全です。
var SystemRand RandSource = systemRand{}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }

// Generator は1銘柄分の日次価格系列を合成します。純粋な生成器であり、永続化は行いません。
type Generator struct {
	rnd RandSource
}

// NewGenerator は指定された乱数源でGeneratorを生成します。
func NewGenerator(rnd RandSource) *Generator {
	return &Generator{rnd: rnd}
}

// Generate はstartの翌日から1日刻みでcount件の観測値を生成します。
// 始値は [0, 10) の一様乱数、終値は始値の1.4倍です。
func (g *Generator) Generate(stockID uint64, start time.Time, count int) []entity.StockTs {
	// 時刻成分を落として暦日に正規化
	dt := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]entity.StockTs, 0, count)
	for i := 0; i < count; i++ {
		dt = dt.AddDate(0, 0, 1)
		open := decimal.NewFromFloat(g.rnd.Float64()).Mul(openScale)
		out = append(out, entity.StockTs{
			StockID: stockID,
			Date:    dt,
			Open:    open,
			Close:   open.Mul(closeFactor),
		})
	}
	return out
}
