package main

import (
	"log"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"financeviews/internal/app/router"
	stocksadapters "financeviews/internal/feature/stocks/adapters"
	stockshandler "financeviews/internal/feature/stocks/transport/handler"
	stocksusecase "financeviews/internal/feature/stocks/usecase"
	tsadapters "financeviews/internal/feature/timeseries/adapters"
	serieshandler "financeviews/internal/feature/timeseries/transport/handler"
	tsusecase "financeviews/internal/feature/timeseries/usecase"
	"financeviews/internal/platform/cache"
	"financeviews/internal/platform/config"
	platformdb "financeviews/internal/platform/db"
	platformredis "financeviews/internal/platform/redis"
	"financeviews/internal/shared/idgen"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.Server.Mode)

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// ID採番（バッチ予約はsequencesテーブルに永続化される）
	reserver := platformdb.NewSequenceReserver(db)
	stockIDs := idgen.NewAllocator(reserver, "stocks", 0)
	seriesIDs := idgen.NewAllocator(reserver, "stock_ts", 0)

	// Repository
	stockRepo := stocksadapters.NewStockRepository(db)
	seriesRepo := tsadapters.NewSeriesRepository(db)

	// Redisキャッシュでラップ
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = cache.TimeUntilNextMidnightUTC()
	}
	cachedSeriesRepo := cache.NewCachingSeriesRepository(rdb, ttl, seriesRepo, cfg.Cache.Namespace)

	// Usecase
	stockUC := stocksusecase.NewStockUsecase(stockRepo, stockIDs)
	seriesUC := tsusecase.NewSeriesUsecase(cachedSeriesRepo, seriesIDs)

	// Handler
	stockH := stockshandler.NewStockHandler(stockUC)
	seriesH := serieshandler.NewSeriesHandler(seriesUC)

	// ルータ生成
	r := router.NewRouter(stockH, seriesH)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
