package model

import "github.com/linkgrove/link-page-service/pkg/timex"

const TableNameClick = "click"

// Click mapped from table <click>
type Click struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	LinkID    string     `gorm:"column:link_id;not null;index:idx_click_link" json:"linkId"`
	UID       int64      `gorm:"column:uid;not null;index:idx_click_uid" json:"uid"`
	IP        string     `gorm:"column:ip" json:"ip"`
	UserAgent string     `gorm:"column:user_agent" json:"userAgent"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt"`
}

// TableName Click's table name
func (*Click) TableName() string {
	return TableNameClick
}
