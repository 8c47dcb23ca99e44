// Package workerpool 提供有界并发的任务池
// 用于吸收点击写入这类高频小任务，避免 goroutine 无限增长
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	// ErrPoolFull 当任务队列已满时返回
	ErrPoolFull = errors.New("worker pool queue is full")
	// ErrPoolClosed 当任务池已关闭时返回
	ErrPoolClosed = errors.New("worker pool is closed")
)

// Config 任务池配置
type Config struct {
	// MaxWorkers 最大并发 worker 数量，默认 20
	MaxWorkers int
	// QueueSize 任务队列大小，默认 1000
	QueueSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MaxWorkers: 20,
		QueueSize:  1000,
	}
}

type task struct {
	ctx context.Context
	fn  func(context.Context) error
}

// Pool 有界并发任务池
type Pool struct {
	config Config
	logger *zap.Logger

	taskCh   chan task
	workerWg sync.WaitGroup

	activeCount atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// New 创建任务池并启动 worker
// cfg 为 nil 时使用默认配置，logger 为 nil 时使用 nop logger
func New(cfg *Config, logger *zap.Logger) *Pool {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 20
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		config: *cfg,
		logger: logger,
		taskCh: make(chan task, cfg.QueueSize),
	}

	for i := 0; i < cfg.MaxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	p.logger.Info("worker pool started",
		zap.Int("maxWorkers", cfg.MaxWorkers),
		zap.Int("queueSize", cfg.QueueSize))

	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()

	for t := range p.taskCh {
		p.activeCount.Add(1)
		if err := t.fn(t.ctx); err != nil {
			p.logger.Warn("pool task failed", zap.Error(err))
		}
		p.activeCount.Add(-1)
	}
}

// Submit 提交任务，队列满或池已关闭时返回错误
// 任务会在后台执行，调用方不等待结果
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPoolClosed
	}
	defer p.mu.RUnlock()

	select {
	case p.taskCh <- task{ctx: ctx, fn: fn}:
		return nil
	default:
		return ErrPoolFull
	}
}

// ActiveCount 返回当前活跃任务数
func (p *Pool) ActiveCount() int64 {
	return p.activeCount.Load()
}

// QueuedCount 返回当前队列中等待的任务数
func (p *Pool) QueuedCount() int {
	return len(p.taskCh)
}

// Shutdown 关闭任务池并等待在执行的任务完成
// ctx 控制等待超时
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.taskCh)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.workerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("worker pool shutdown completed")
		return nil
	case <-ctx.Done():
		p.logger.Warn("worker pool shutdown timeout")
		return ctx.Err()
	}
}
