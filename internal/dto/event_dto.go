package dto

import "github.com/linkgrove/link-page-service/pkg/timex"

// EventDTO Agenda event as exposed on the wire
// EventDTO 日程事件的外部表示
type EventDTO struct {
	ID           string      `json:"id,omitempty" form:"id"`
	CollectionID string      `json:"collectionId" form:"collectionId"`
	Title        string      `json:"title" form:"title"`
	Date         *timex.Time `json:"date,omitempty"`
	Location     string      `json:"location" form:"location"`
	URL          string      `json:"url" form:"url"`
	Status       string      `json:"status" form:"status"`
	Position     int         `json:"position"`
	CreatedAt    timex.Time  `json:"createdAt"`
	UpdatedAt    timex.Time  `json:"updatedAt"`
}

// EventBulkReplaceRequest Wholesale event replacement for one agenda collection
// 按集合全量替换事件的请求参数
type EventBulkReplaceRequest struct {
	CollectionID string      `json:"collectionId" form:"collectionId" binding:"required"`
	Events       []*EventDTO `json:"events" binding:"required"`
}

// EventListRequest List events of one collection
// 查询集合事件列表的请求参数
type EventListRequest struct {
	CollectionID string `json:"collectionId" form:"collectionId" binding:"required"`
}

// EventCreateRequest Single event create request
// 单事件创建请求参数
type EventCreateRequest struct {
	CollectionID string      `json:"collectionId" form:"collectionId" binding:"required"`
	Title        string      `json:"title" form:"title" binding:"required"`
	Date         *timex.Time `json:"date"`
	Location     string      `json:"location" form:"location"`
	URL          string      `json:"url" form:"url"`
	Status       string      `json:"status" form:"status"`
}

// EventUpdateRequest Single event update request
// 单事件更新请求参数
type EventUpdateRequest struct {
	ID       string      `json:"id" form:"id" binding:"required"`
	Title    *string     `json:"title" form:"title"`
	Date     *timex.Time `json:"date"`
	Location *string     `json:"location" form:"location"`
	URL      *string     `json:"url" form:"url"`
	Status   *string     `json:"status" form:"status"`
}

// EventDeleteRequest Single event delete request
// 单事件删除请求参数
type EventDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}
