// Package idgen は識別子のバッチ割り当てを提供します。
package idgen

import (
	"context"
	"errors"
	"math"
	"sync"
)

// DefaultBatchSize は1回の予約で確保する識別子の個数です。
const DefaultBatchSize = 100

// ErrExhausted は識別子空間を使い切った場合に返されます。
// 実運用では到達しない想定のため、リトライは定義しません。
var ErrExhausted = errors.New("identifier space exhausted")

// RangeReserver は単調増加カウンタから識別子範囲を永続的に予約します。
// Goの慣例に従い、インターフェースはコンシューマー（idgen）が定義します。
type RangeReserver interface {
	// Reserve は [start, start+n) の範囲を予約し、start を返します。
	Reserve(ctx context.Context, name string, n uint64) (start uint64, err error)
}

// Allocator は識別子をバッチ単位で事前予約し、未発行の識別子を払い出します。
// 予約済みウィンドウ内の払い出しはプロセス内で完結するため、
// 並行する作成処理が共有カウンタで競合するのはバッチ境界のみです。
type Allocator struct {
	reserver RangeReserver
	name     string
	batch    uint64

	mu    sync.Mutex
	next  uint64 // 次に払い出す識別子
	limit uint64 // 予約済みウィンドウの終端（排他）
}

// NewAllocator は新しいAllocatorを生成します。batchが0の場合はDefaultBatchSizeを使用します。
func NewAllocator(reserver RangeReserver, name string, batch uint64) *Allocator {
	if batch == 0 {
		batch = DefaultBatchSize
	}
	return &Allocator{reserver: reserver, name: name, batch: batch}
}

// Next は未発行の識別子を1つ返します。
// ウィンドウを使い切った場合は次の範囲を予約します。
func (a *Allocator) Next(ctx context.Context) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.next == a.limit {
		start, err := a.reserver.Reserve(ctx, a.name, a.batch)
		if err != nil {
			return 0, err
		}
		if start > math.MaxUint64-a.batch {
			return 0, ErrExhausted
		}
		a.next = start
		a.limit = start + a.batch
	}

	id := a.next
	a.next++
	return id, nil
}

// MemoryReserver は永続化を伴わないインメモリのRangeReserver実装です。
// テストおよび単一プロセスでの実行向けです。
type MemoryReserver struct {
	mu   sync.Mutex
	next map[string]uint64
}

var _ RangeReserver = (*MemoryReserver)(nil)

// NewMemoryReserver は新しいMemoryReserverを生成します。識別子は1から始まります。
func NewMemoryReserver() *MemoryReserver {
	return &MemoryReserver{next: map[string]uint64{}}
}

// Reserve は指定された名前のカウンタから範囲を予約します。
func (m *MemoryReserver) Reserve(_ context.Context, name string, n uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := m.next[name]
	if start == 0 {
		start = 1
	}
	if start > math.MaxUint64-n {
		return 0, ErrExhausted
	}
	m.next[name] = start + n
	return start, nil
}
