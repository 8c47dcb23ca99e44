package model

import "github.com/linkgrove/link-page-service/pkg/timex"

const TableNameEvent = "event"

// Event mapped from table <event>
type Event struct {
	ID           string      `gorm:"column:id;primaryKey" json:"id"`
	CollectionID string      `gorm:"column:collection_id;not null;index:idx_event_collection" json:"collectionId"`
	UID          int64       `gorm:"column:uid;not null;index:idx_event_uid" json:"uid"`
	Title        string      `gorm:"column:title" json:"title"`
	Date         *timex.Time `gorm:"column:date;type:datetime;default:NULL" json:"date"`
	Location     string      `gorm:"column:location" json:"location"`
	URL          string      `gorm:"column:url" json:"url"`
	Status       string      `gorm:"column:status" json:"status"`
	Position     int         `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt    timex.Time  `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt"`
	UpdatedAt    timex.Time  `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt"`
}

// TableName Event's table name
func (*Event) TableName() string {
	return TableNameEvent
}
