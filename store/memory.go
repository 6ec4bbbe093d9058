package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rushteam/hotelrec/core"
)

// MemoryStore 是内存实现的 KeyValueStore，用于测试/开发/单机部署。
// 进程重启后数据丢失；人气榜等派生数据可由 Aggregator 重新预热。
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]record
	boards  map[string]map[string]float64 // zset key -> member -> score
	sweeper *time.Ticker
	done    chan struct{}
	once    sync.Once
}

type record struct {
	value    []byte
	expireAt time.Time // 零值表示永不过期
}

func (r record) expired(now time.Time) bool {
	return !r.expireAt.IsZero() && now.After(r.expireAt)
}

func NewMemoryStore() *MemoryStore {
	m := &MemoryStore{
		records: make(map[string]record),
		boards:  make(map[string]map[string]float64),
		sweeper: time.NewTicker(10 * time.Second),
		done:    make(chan struct{}),
	}
	go m.sweep()
	return m
}

func (m *MemoryStore) Name() string { return "memory" }

// Close 停止清扫并退出清扫协程。Stop 不关闭 ticker 的通道，
// 必须额外通知 done，否则协程会永远阻塞在 sweeper.C 上。
func (m *MemoryStore) Close() error {
	m.once.Do(func() {
		m.sweeper.Stop()
		close(m.done)
	})
	return nil
}

// sweep 周期性清除过期记录。读路径本身也检查过期，
// 清扫只是回收内存，不影响可见性语义。
func (m *MemoryStore) sweep() {
	for {
		select {
		case <-m.done:
			return
		case <-m.sweeper.C:
			now := time.Now()
			m.mu.Lock()
			for k, r := range m.records {
				if r.expired(now) {
					delete(m.records, k)
				}
			}
			m.mu.Unlock()
		}
	}
}

func expiry(ttl []int) time.Time {
	if len(ttl) > 0 && ttl[0] > 0 {
		return time.Now().Add(time.Duration(ttl[0]) * time.Second)
	}
	return time.Time{}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[key]
	if !ok || r.expired(time.Now()) {
		return nil, core.ErrStoreNotFound
	}
	return r.value, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key] = record{value: value, expireAt: expiry(ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, key)
	return nil
}

func (m *MemoryStore) BatchGet(_ context.Context, keys []string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	result := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if r, ok := m.records[k]; ok && !r.expired(now) {
			result[k] = r.value
		}
	}
	return result, nil
}

func (m *MemoryStore) BatchSet(_ context.Context, kvs map[string][]byte, ttl ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expireAt := expiry(ttl)
	for k, v := range kvs {
		m.records[k] = record{value: v, expireAt: expireAt}
	}
	return nil
}

func (m *MemoryStore) ZAdd(_ context.Context, key string, score float64, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	board := m.boards[key]
	if board == nil {
		board = make(map[string]float64)
		m.boards[key] = board
	}
	board[member] = score
	return nil
}

// ZRange 按 score 降序返回 [start, stop] 范围内的成员。
// 同分成员按 member 字典序升序，保证人气榜输出可复现。
func (m *MemoryStore) ZRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	board, ok := m.boards[key]
	if !ok || len(board) == 0 {
		return nil, nil
	}

	members := make([]string, 0, len(board))
	for member := range board {
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool {
		si, sj := board[members[i]], board[members[j]]
		if si != sj {
			return si > sj
		}
		return members[i] < members[j]
	})

	if start < 0 {
		start = 0
	}
	if stop < 0 || stop >= int64(len(members)) {
		stop = int64(len(members)) - 1
	}
	if start > stop {
		return nil, nil
	}
	return members[start : stop+1], nil
}

func (m *MemoryStore) ZScore(_ context.Context, key string, member string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	board, ok := m.boards[key]
	if !ok {
		return 0, core.ErrStoreNotFound
	}
	score, ok := board[member]
	if !ok {
		return 0, core.ErrStoreNotFound
	}
	return score, nil
}

// hash 操作复用普通记录空间，key 编码为 "hash:<key>:<field>"。

func hashKey(key, field string) string {
	return "hash:" + key + ":" + field
}

func (m *MemoryStore) HGet(_ context.Context, key, field string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[hashKey(key, field)]
	if !ok || r.expired(time.Now()) {
		return nil, core.ErrStoreNotFound
	}
	return r.value, nil
}

func (m *MemoryStore) HSet(_ context.Context, key, field string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[hashKey(key, field)] = record{value: value}
	return nil
}

func (m *MemoryStore) HGetAll(_ context.Context, key string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := "hash:" + key + ":"
	now := time.Now()
	result := make(map[string][]byte)
	for k, r := range m.records {
		if strings.HasPrefix(k, prefix) && !r.expired(now) {
			result[strings.TrimPrefix(k, prefix)] = r.value
		}
	}
	return result, nil
}

var _ core.Store = (*MemoryStore)(nil)
var _ core.KeyValueStore = (*MemoryStore)(nil)
