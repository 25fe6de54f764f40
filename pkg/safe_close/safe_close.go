// Package safe_close coordinates graceful shutdown: components attach
// themselves and are notified together when a close signal is sent.
// Package safe_close 协调优雅关闭：组件注册后统一接收关闭信号。
package safe_close

import (
	"sync"
)

// SafeClose 关闭协调器
type SafeClose struct {
	mu          sync.Mutex
	closeSignal chan struct{}
	closed      bool
	err         error
	wg          sync.WaitGroup
}

// NewSafeClose 创建关闭协调器
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach runs f in its own goroutine. f must call done() when it has
// fully stopped and must return soon after closeSignal fires.
// Attach 在独立协程中运行 f。f 停止后必须调用 done()，
// 并在 closeSignal 触发后尽快返回。
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	done := func() {
		s.wg.Done()
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal broadcasts the close signal. The first error wins;
// repeated calls are no-ops.
// SendCloseSignal 广播关闭信号，只记录第一个错误，重复调用无效。
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// CloseSignal 返回关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached component has called done and
// returns the error that triggered the shutdown, if any.
// WaitClosed 阻塞到所有组件退出，返回触发关闭的错误。
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
