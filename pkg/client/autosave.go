package client

import (
	"context"
	"sync"
	"time"
)

// SaveFunc 执行一次保存
type SaveFunc func(ctx context.Context, draft *Draft) error

// AutoSaver debounces draft saves: every push resets the timer and
// replaces the pending draft, so only the latest draft is saved after
// a quiet period. Saves are fire-and-forget, a slow save does not
// block the next one.
// AutoSaver 对草稿保存做防抖：每次 Push 重置计时器并覆盖待保存草稿，
// 静默期结束只保存最新草稿。保存互不等待，慢保存不阻塞后续保存。
type AutoSaver struct {
	mu      sync.Mutex
	delay   time.Duration
	save    SaveFunc
	onError func(error)
	timer   *time.Timer
	pending *Draft
}

// AutoSaverOption AutoSaver 可选配置
type AutoSaverOption func(*AutoSaver)

// WithErrorHandler 注册保存失败回调
func WithErrorHandler(f func(error)) AutoSaverOption {
	return func(s *AutoSaver) {
		s.onError = f
	}
}

// NewAutoSaver 创建防抖保存器
func NewAutoSaver(delay time.Duration, save SaveFunc, opts ...AutoSaverOption) *AutoSaver {
	s := &AutoSaver{
		delay: delay,
		save:  save,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push 记录最新草稿并重置计时器
func (s *AutoSaver) Push(draft *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = draft

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// fire 取走待保存草稿并异步保存
func (s *AutoSaver) fire() {
	s.mu.Lock()
	draft := s.pending
	s.pending = nil
	s.mu.Unlock()

	if draft == nil {
		return
	}
	s.run(draft)
}

// Flush 立即保存待保存草稿（如有），用于退出前收尾
func (s *AutoSaver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	draft := s.pending
	s.pending = nil
	s.mu.Unlock()

	if draft == nil {
		return
	}
	s.run(draft)
}

// Stop 丢弃待保存草稿并停止计时器
func (s *AutoSaver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = nil
}

func (s *AutoSaver) run(draft *Draft) {
	if err := s.save(context.Background(), draft); err != nil && s.onError != nil {
		s.onError(err)
	}
}
