package model

import "github.com/linkgrove/link-page-service/pkg/timex"

const TableNameLink = "link"

// Link mapped from table <link>
type Link struct {
	ID            string     `gorm:"column:id;primaryKey" json:"id"`
	UID           int64      `gorm:"column:uid;not null;index:idx_link_uid,priority:1" json:"uid"`
	ParentID      string     `gorm:"column:parent_id;index:idx_link_parent" json:"parentId"`
	Position      int        `gorm:"column:position;not null;default:0" json:"position"`
	Kind          string     `gorm:"column:kind;not null" json:"kind"`
	Title         string     `gorm:"column:title" json:"title"`
	URL           string     `gorm:"column:url" json:"url"`
	Image         string     `gorm:"column:image" json:"image"`
	Layout        string     `gorm:"column:layout" json:"layout"`
	Highlight     bool       `gorm:"column:highlight;default:false" json:"highlight"`
	EmbedType     string     `gorm:"column:embed_type" json:"embedType"`
	Subtitle      string     `gorm:"column:subtitle" json:"subtitle"`
	Platform      string     `gorm:"column:platform" json:"platform"`
	VideoURL      string     `gorm:"column:video_url" json:"videoUrl"`
	IsActive      bool       `gorm:"column:is_active;default:true" json:"isActive"`
	IsArchived    bool       `gorm:"column:is_archived;default:false;index:idx_link_uid,priority:2" json:"isArchived"`
	ScheduleStart *timex.Time `gorm:"column:schedule_start;type:datetime;default:NULL" json:"scheduleStart"`
	ScheduleEnd   *timex.Time `gorm:"column:schedule_end;type:datetime;default:NULL" json:"scheduleEnd"`
	Clicks        int64      `gorm:"column:clicks;not null;default:0" json:"clicks"`
	CreatedAt     timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt"`
	UpdatedAt     timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt"`
}

// TableName Link's table name
func (*Link) TableName() string {
	return TableNameLink
}
