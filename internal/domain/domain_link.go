// Package domain 定义领域模型和接口
package domain

import "time"

// LinkKind 定义链接节点类型
type LinkKind string

const (
	KindLink       LinkKind = "link"       // 普通链接
	KindCollection LinkKind = "collection" // 集合，可包含子节点
	KindSocial     LinkKind = "social"     // 社交媒体嵌入
	KindAgenda     LinkKind = "agenda"     // 日程节点，持有 Event 列表
)

// Valid 判断是否为已知的节点类型
func (k LinkKind) Valid() bool {
	switch k {
	case KindLink, KindCollection, KindSocial, KindAgenda:
		return true
	}
	return false
}

// CanHaveChildren 判断该类型是否允许子节点
// 只有 collection 可以持有子节点，且层级最多两层
func (k LinkKind) CanHaveChildren() bool {
	return k == KindCollection
}

// CanHaveEvents 判断该类型是否允许日程事件
func (k LinkKind) CanHaveEvents() bool {
	return k == KindAgenda
}

// Link 链接节点领域模型
// 扁平存储，通过 ParentID 表达两层树结构
type Link struct {
	ID            string
	UID           int64
	ParentID      string // 空字符串表示根节点
	Position      int
	Kind          LinkKind
	Title         string
	URL           string
	Image         string
	Layout        string
	Highlight     bool
	EmbedType     string
	Subtitle      string
	Platform      string
	VideoURL      string
	IsActive      bool
	IsArchived    bool
	ScheduleStart *time.Time
	ScheduleEnd   *time.Time
	Clicks        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsRoot 判断是否为根节点
func (l *Link) IsRoot() bool {
	return l.ParentID == ""
}

// IsVisible 判断节点在 asOf 时刻是否对公开访问可见
// 规则：is_active 为真，且调度窗口（含边界）覆盖 asOf
// 仅基于节点自身属性，不考虑父节点状态
func (l *Link) IsVisible(asOf time.Time) bool {
	if !l.IsActive {
		return false
	}
	if l.ScheduleStart != nil && l.ScheduleStart.After(asOf) {
		return false
	}
	if l.ScheduleEnd != nil && l.ScheduleEnd.Before(asOf) {
		return false
	}
	return true
}
