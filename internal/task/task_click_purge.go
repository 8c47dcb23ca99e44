package task

import (
	"context"
	"time"

	"github.com/linkgrove/link-page-service/internal/app"

	"go.uber.org/zap"
)

// ClickPurgeTask 点击明细清理任务
// 保留链接上的累计计数，仅清理过期的明细行
type ClickPurgeTask struct {
	app       *app.App
	retention time.Duration
	cronSpec  string
}

// Name 返回任务名称
func (t *ClickPurgeTask) Name() string {
	return "ClickPurge"
}

// CronSpec 返回 cron 表达式
func (t *ClickPurgeTask) CronSpec() string {
	return t.cronSpec
}

// IsStartupRun 是否立即执行一次
func (t *ClickPurgeTask) IsStartupRun() bool {
	return false
}

// Run 执行清理任务
func (t *ClickPurgeTask) Run(ctx context.Context) error {
	before := time.Now().Add(-t.retention)
	n, err := t.app.ClickService.PurgeOlderThan(ctx, before)
	if err != nil {
		t.app.Logger().Error("task log",
			zap.String("task", t.Name()),
			zap.String("msg", "failed"),
			zap.Error(err))
		return err
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.String("msg", "success"),
		zap.Int64("purged", n))
	return nil
}

// NewClickPurgeTask 创建点击明细清理任务
// 保留时间未配置或为 0 时任务禁用
func NewClickPurgeTask(appContainer *app.App) (Task, error) {
	retention := appContainer.Config().GetClickRetention()
	if retention <= 0 {
		return nil, nil
	}

	return &ClickPurgeTask{
		app:       appContainer,
		retention: retention,
		cronSpec:  appContainer.Config().Click.PurgeCron,
	}, nil
}

// init 自动注册清理任务
func init() {
	Register(func(appContainer *app.App) (Task, error) {
		return NewClickPurgeTask(appContainer)
	})
}
