package domain

import (
	"context"
	"time"
)

// LinkRepository 链接节点仓储接口
type LinkRepository interface {
	// GetByID 根据ID获取节点（限定所有者）
	GetByID(ctx context.Context, id string, uid int64) (*Link, error)

	// GetAnyByID 根据ID获取节点，不限定所有者
	// 公开点击路径使用，调用方只持有节点ID
	GetAnyByID(ctx context.Context, id string) (*Link, error)

	// ListByUID 获取用户全部未归档节点，按 position、id 稳定排序
	ListByUID(ctx context.Context, uid int64) ([]*Link, error)

	// ListArchivedByUID 获取用户全部已归档节点
	ListArchivedByUID(ctx context.Context, uid int64) ([]*Link, error)

	// ListIDsByUID 获取用户全部未归档节点的ID集合
	ListIDsByUID(ctx context.Context, uid int64) ([]string, error)

	// Create 创建节点
	Create(ctx context.Context, link *Link) (*Link, error)

	// Update 更新节点
	Update(ctx context.Context, link *Link) (*Link, error)

	// UpdateArchived 更新节点归档状态
	UpdateArchived(ctx context.Context, id string, uid int64, archived bool) error

	// IncrClicks 点击计数加一
	IncrClicks(ctx context.Context, id string) error

	// Delete 物理删除节点
	Delete(ctx context.Context, id string, uid int64) error

	// DeleteBatch 批量物理删除节点
	DeleteBatch(ctx context.Context, ids []string, uid int64) error
}

// EventRepository 日程事件仓储接口
type EventRepository interface {
	// GetByID 根据ID获取事件（限定所有者）
	GetByID(ctx context.Context, id string, uid int64) (*Event, error)

	// ListByCollection 获取集合下全部事件，按 position 排序
	ListByCollection(ctx context.Context, collectionID string, uid int64) ([]*Event, error)

	// ListByUID 获取用户全部事件，按 position 排序
	ListByUID(ctx context.Context, uid int64) ([]*Event, error)

	// Create 创建事件
	Create(ctx context.Context, event *Event) (*Event, error)

	// Update 更新事件
	Update(ctx context.Context, event *Event) (*Event, error)

	// Delete 物理删除事件
	Delete(ctx context.Context, id string, uid int64) error

	// DeleteByCollection 删除集合下全部事件
	DeleteByCollection(ctx context.Context, collectionID string, uid int64) error

	// DeleteByCollections 批量删除多个集合下的全部事件
	DeleteByCollections(ctx context.Context, collectionIDs []string, uid int64) error
}

// ClickRepository 点击记录仓储接口
type ClickRepository interface {
	// Create 写入一条点击记录
	Create(ctx context.Context, click *Click) error

	// DeleteByLinkID 删除指定链接的全部点击记录
	DeleteByLinkID(ctx context.Context, linkID string) error

	// DeleteByLinkIDs 批量删除多个链接的点击记录
	DeleteByLinkIDs(ctx context.Context, linkIDs []string) error

	// DeleteOlderThan 删除早于指定时间的点击记录，返回删除行数
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// UpdatePassword 更新用户密码
	UpdatePassword(ctx context.Context, password string, uid int64) error
}

// TxManager 事务管理接口
// fn 收到的 context 携带事务句柄，仓储方法在其中执行时加入同一事务
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
