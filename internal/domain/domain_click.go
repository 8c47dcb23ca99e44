package domain

import "time"

// Click 点击记录领域模型
// 仅由点击跟踪路径写入，删除链接时按 LinkID 级联清理
type Click struct {
	ID        int64
	LinkID    string
	UID       int64
	IP        string
	UserAgent string
	CreatedAt time.Time
}
