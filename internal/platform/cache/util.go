package cache

import (
	"time"
)

// TimeUntilNextMidnightUTC は次のUTC日付変更までの期間を返します。
// 観測値は暦日単位なので、日付が変わるタイミングでキャッシュを自然に失効させます。
func TimeUntilNextMidnightUTC() time.Duration {
	now := time.Now().UTC()

	// 次の0時（UTC）を計算
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

	return next.Sub(now)
}
