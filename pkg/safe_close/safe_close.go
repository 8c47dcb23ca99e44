// Package safe_close 提供多组件协同关闭控制
package safe_close

import (
	"sync"
)

// SafeClose 协调多个后台组件的启动与优雅关闭
// 组件通过 Attach 注册，收到关闭信号后各自清理并调用 done
type SafeClose struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	closed      bool
	err         error
}

// NewSafeClose 创建 SafeClose 实例
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach 注册一个组件
// f 会在新的 goroutine 中执行；f 必须在退出前调用 done，
// 并监听 closeSignal 以便及时退出
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal 发出关闭信号，首个错误会被记录
// 可以被多次调用，只有第一次生效
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

// WaitClosed 阻塞直到所有已注册组件退出，返回首个关闭错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ReceiveCloseSignal 返回关闭信号通道，用于 select 监听
func (s *SafeClose) ReceiveCloseSignal() <-chan struct{} {
	return s.closeSignal
}
