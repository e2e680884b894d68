package router

import (
	"github.com/gin-gonic/gin"

	stockshandler "financeviews/internal/feature/stocks/transport/handler"
	serieshandler "financeviews/internal/feature/timeseries/transport/handler"
	"financeviews/internal/platform/http/handler"
)

func NewRouter(stocks *stockshandler.StockHandler, series *serieshandler.SeriesHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	// 銘柄カタログ
	r.GET("/stocks", stocks.List)
	r.POST("/stocks", stocks.Create)

	// 日次観測値
	r.GET("/data", series.GetData)

	return r
}
