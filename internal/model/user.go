package model

import "time"

// User 用户资料
type User struct {
	ID          string    `gorm:"primaryKey;size:64;comment:用户标识" json:"id"`
	FullName    string    `gorm:"size:255;not null;comment:姓名" json:"full_name"`
	Email       string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	PhoneNumber string    `gorm:"size:32;comment:手机号" json:"phone_number"`
	Password    string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	AvatarURL   *string   `gorm:"size:500;comment:头像地址" json:"avatar_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
