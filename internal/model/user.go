package model

import "github.com/linkgrove/link-page-service/pkg/timex"

const TableNameUser = "user"

// User mapped from table <user>
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Username  string     `gorm:"column:username;not null;uniqueIndex:idx_user_username" json:"username"`
	Email     string     `gorm:"column:email;not null;uniqueIndex:idx_user_email" json:"email"`
	Password  string     `gorm:"column:password;not null" json:"-"`
	Nickname  string     `gorm:"column:nickname" json:"nickname"`
	Avatar    string     `gorm:"column:avatar" json:"avatar"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}
