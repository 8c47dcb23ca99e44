package domain

import "time"

// Event 日程事件领域模型
// 归属于一个 kind=agenda 的链接节点
type Event struct {
	ID           string
	CollectionID string
	UID          int64
	Title        string
	Date         *time.Time
	Location     string
	URL          string
	Status       string
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
