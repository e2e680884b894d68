package main

import (
	"context"
	"log"

	"financeviews/internal/feature/ingestion/dump"
	ingestusecase "financeviews/internal/feature/ingestion/usecase"
	stocksadapters "financeviews/internal/feature/stocks/adapters"
	stocksusecase "financeviews/internal/feature/stocks/usecase"
	tsadapters "financeviews/internal/feature/timeseries/adapters"
	tsusecase "financeviews/internal/feature/timeseries/usecase"
	"financeviews/internal/platform/config"
	platformdb "financeviews/internal/platform/db"
	"financeviews/internal/shared/idgen"
)

func main() {
	cfg := config.Load()

	db := platformdb.OpenDB()

	reserver := platformdb.NewSequenceReserver(db)
	stockIDs := idgen.NewAllocator(reserver, "stocks", 0)
	seriesIDs := idgen.NewAllocator(reserver, "stock_ts", 0)

	stockUC := stocksusecase.NewStockUsecase(stocksadapters.NewStockRepository(db), stockIDs)
	seriesUC := tsusecase.NewSeriesUsecase(tsadapters.NewSeriesRepository(db), seriesIDs)
	gen := tsusecase.NewGenerator(tsusecase.SystemRand)

	uc := ingestusecase.NewIngestUsecase(stockUC, seriesUC, gen, cfg.Ingest.Workers)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Ingest.Timeout)
	defer cancel()

	// ダンプファイルがあればそこから、なければ合成シードで投入する
	var seeds []ingestusecase.Seed
	if cfg.Ingest.DumpFile != "" {
		records, err := dump.ParseFile(cfg.Ingest.DumpFile)
		if err != nil {
			log.Fatal("failed to parse dump:", err)
		}
		seeds = ingestusecase.SeedsFromDump(records)
	} else {
		seeds = ingestusecase.SyntheticSeeds(cfg.Ingest.SyntheticCount)
	}

	if err := uc.Ingest(ctx, seeds, cfg.Ingest.SeriesLengthDays); err != nil {
		log.Fatal(err)
	}
	log.Printf("seed ok: %d stocks, %d days each", len(seeds), cfg.Ingest.SeriesLengthDays)
}
