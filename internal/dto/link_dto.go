// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/linkgrove/link-page-service/pkg/timex"

// LinkNodeDTO Link tree node as exposed on the wire, nested
// LinkNodeDTO 链接树节点的外部表示，嵌套结构
type LinkNodeDTO struct {
	ID            string         `json:"id,omitempty" form:"id"`                // Server id, absent for new nodes // 服务端标识，新节点为空
	Kind          string         `json:"kind" form:"kind" binding:"required"`   // link collection social agenda // 节点类型
	Title         string         `json:"title" form:"title"`                    // Display title // 展示标题
	URL           string         `json:"url" form:"url"`                        // Target url // 目标地址
	Image         string         `json:"image" form:"image"`                    // Icon or cover // 图标或封面
	Layout        string         `json:"layout" form:"layout"`                  // Render layout // 渲染布局
	Highlight     bool           `json:"highlight" form:"highlight"`           // Highlighted entry // 高亮展示
	EmbedType     string         `json:"embedType" form:"embedType"`           // Social embed type // 嵌入类型
	Subtitle      string         `json:"subtitle" form:"subtitle"`             // Secondary text // 副标题
	Platform      string         `json:"platform" form:"platform"`             // Social platform tag // 社交平台
	VideoURL      string         `json:"videoUrl" form:"videoUrl"`             // Social video url // 视频地址
	IsActive      bool           `json:"isActive" form:"isActive"`             // Toggle // 是否启用
	ScheduleStart *timex.Time    `json:"scheduleStart,omitempty"`              // Visibility window start // 可见窗口起点
	ScheduleEnd   *timex.Time    `json:"scheduleEnd,omitempty"`                // Visibility window end // 可见窗口终点
	Clicks        int64          `json:"clicks"`                               // Click counter, read only // 点击计数，只读
	Children      []*LinkNodeDTO `json:"children,omitempty"`                   // Collection children // 集合子节点
	Events        []*EventDTO    `json:"events,omitempty"`                     // Agenda events // 日程事件
	CreatedAt     timex.Time     `json:"createdAt"`
	UpdatedAt     timex.Time     `json:"updatedAt"`
}

// LinkBulkSaveRequest Full-tree save request
// 全量树保存请求参数
type LinkBulkSaveRequest struct {
	Links []*LinkNodeDTO `json:"links" binding:"required"`
}

// LinkCreateRequest Single node create request
// 单节点创建请求参数
type LinkCreateRequest struct {
	ParentID      string      `json:"parentId" form:"parentId"`
	Kind          string      `json:"kind" form:"kind" binding:"required"`
	Title         string      `json:"title" form:"title"`
	URL           string      `json:"url" form:"url"`
	Image         string      `json:"image" form:"image"`
	Layout        string      `json:"layout" form:"layout"`
	Highlight     bool        `json:"highlight" form:"highlight"`
	EmbedType     string      `json:"embedType" form:"embedType"`
	Subtitle      string      `json:"subtitle" form:"subtitle"`
	Platform      string      `json:"platform" form:"platform"`
	VideoURL      string      `json:"videoUrl" form:"videoUrl"`
	IsActive      *bool       `json:"isActive" form:"isActive"` // 缺省为 true
	ScheduleStart *timex.Time `json:"scheduleStart"`
	ScheduleEnd   *timex.Time `json:"scheduleEnd"`
}

// LinkUpdateRequest Single node update request
// 单节点更新请求参数
type LinkUpdateRequest struct {
	ID            string      `json:"id" form:"id" binding:"required"`
	Title         *string     `json:"title" form:"title"`
	URL           *string     `json:"url" form:"url"`
	Image         *string     `json:"image" form:"image"`
	Layout        *string     `json:"layout" form:"layout"`
	Highlight     *bool       `json:"highlight" form:"highlight"`
	EmbedType     *string     `json:"embedType" form:"embedType"`
	Subtitle      *string     `json:"subtitle" form:"subtitle"`
	Platform      *string     `json:"platform" form:"platform"`
	VideoURL      *string     `json:"videoUrl" form:"videoUrl"`
	IsActive      *bool       `json:"isActive" form:"isActive"`
	ScheduleStart *timex.Time `json:"scheduleStart"`
	ScheduleEnd   *timex.Time `json:"scheduleEnd"`
}

// LinkDeleteRequest Single node delete request
// 单节点删除请求参数
type LinkDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

// LinkArchiveRequest Archive toggle request
// 归档切换请求参数
type LinkArchiveRequest struct {
	ID       string `json:"id" form:"id" binding:"required"`
	Archived *bool  `json:"archived" form:"archived" binding:"required"`
}

// ClickTrackRequest Public click tracking request
// 公开点击上报请求参数
type ClickTrackRequest struct {
	LinkID string `json:"linkId" form:"linkId" binding:"required"`
}
