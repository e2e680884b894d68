// Package usecase はingestionフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	stockentity "financeviews/internal/feature/stocks/domain/entity"
	tsentity "financeviews/internal/feature/timeseries/domain/entity"
)

// StockCatalog は銘柄カタログへの書き込みを抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（ingestion usecase）が定義します。
type StockCatalog interface {
	Create(ctx context.Context, name, ticker, isin, identifierCode string) (*stockentity.Stock, error)
}

// SeriesStore は観測値バッチの永続化を抽象化します。
type SeriesStore interface {
	SaveAll(ctx context.Context, ts []tsentity.StockTs) error
}

// SeriesGenerator は1銘柄分の日次系列を合成します。
type SeriesGenerator interface {
	Generate(stockID uint64, start time.Time, count int) []tsentity.StockTs
}

// IngestUsecase はダンプ取り込みパイプラインを実装します。
// レコードごとに銘柄を作成し、系列を生成して一括永続化します。
type IngestUsecase struct {
	catalog StockCatalog
	series  SeriesStore
	gen     SeriesGenerator
	workers int

	// now は系列の起点日を供給します。テストで差し替えます。
	now func() time.Time
}

// NewIngestUsecase は新しいIngestUsecaseを生成します。
// workersが0以下の場合は利用可能な並列度を使用します。
func NewIngestUsecase(catalog StockCatalog, series SeriesStore, gen SeriesGenerator, workers int) *IngestUsecase {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &IngestUsecase{
		catalog: catalog,
		series:  series,
		gen:     gen,
		workers: workers,
		now:     time.Now,
	}
}

// ingestOne は1レコード分を処理します。銘柄の作成が完了してから系列を生成するため、
// 系列は必ず永続化済みの銘柄を参照します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, seed Seed, start time.Time, days int) error {
	s, err := iu.catalog.Create(ctx, seed.Name, seed.Ticker, seed.ISIN, seed.IdentifierCode)
	if err != nil {
		return fmt.Errorf("create stock %q: %w", seed.Ticker, err)
	}

	ts := iu.gen.Generate(s.ID, start, days)
	if err := iu.series.SaveAll(ctx, ts); err != nil {
		return fmt.Errorf("save series for %q: %w", seed.Ticker, err)
	}
	return nil
}

// Ingest は全レコードを境界つきワーカープールで並行処理します。
// 銘柄間の順序は保証しません。レコード単体の失敗は隔離して残りを続行し、
// 全件完了後に失敗を集約したエラーを返します。成功時の戻り値はなく、
// ストレージへの副作用のみが結果です。
func (iu *IngestUsecase) Ingest(ctx context.Context, seeds []Seed, seriesLengthDays int) error {
	if seriesLengthDays < 0 {
		return fmt.Errorf("ingest: seriesLengthDays must not be negative, got %d", seriesLengthDays)
	}

	start := iu.now()

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(iu.workers)

	for _, seed := range seeds {
		seed := seed
		g.Go(func() error {
			// キャンセル後のレコードは着手しない
			if err := ctx.Err(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("record %q: %w", seed.Ticker, err))
				mu.Unlock()
				return nil
			}

			if err := iu.ingestOne(ctx, seed, start, seriesLengthDays); err != nil {
				// 1レコードの失敗では処理を止めず、集約して報告する
				slog.Error("failed to ingest record", "ticker", seed.Ticker, "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		slog.Warn("ingestion finished with failures", "failed", len(errs), "total", len(seeds))
		return fmt.Errorf("ingest: %d of %d records failed: %w", len(errs), len(seeds), errors.Join(errs...))
	}

	slog.Info("ingestion finished", "records", len(seeds), "days", seriesLengthDays)
	return nil
}
