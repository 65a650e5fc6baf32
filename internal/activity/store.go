package activity

import (
	"sync"
	"time"
)

// Kind 标识活动日志条目的类别，前端按类别着色展示。
type Kind string

const (
	KindWebhook    Kind = "WEBHOOK"
	KindAIAnalysis Kind = "AI_ANALYSIS"
	KindAIStrategy Kind = "AI_STRATEGY"
	KindExecution  Kind = "EXECUTION"
	KindError      Kind = "ERROR"
)

// Entry 是不可变的活动日志条目，写入后不再修改。
type Entry struct {
	ID      int64  `json:"id"`
	Time    string `json:"time"`
	Type    Kind   `json:"type"`
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Store 是进程级环形日志：固定容量、最新在前、超限淘汰最旧。
// 不落盘，进程重启即清空。
type Store struct {
	mu       sync.Mutex
	capacity int
	lastID   int64
	entries  []Entry // 最新在 entries[0]
}

// NewStore 创建容量为 capacity 的日志仓库；capacity < 1 时按 1 处理。
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}
}

// Record 头插一条新日志，超过容量时丢弃尾部最旧条目。
// 锁只覆盖这次追加，调用方不会隔着网络调用持锁。
func (s *Store) Record(kind Kind, source, message string) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	entry := Entry{
		ID:      id,
		Time:    now.Format("15:04:05"),
		Type:    kind,
		Source:  source,
		Message: message,
	}
	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
}

// Snapshot 返回当前全部条目的副本，最新在前。
func (s *Store) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len 返回当前条目数。
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
