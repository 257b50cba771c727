package entity

import (
	"time"
)

// ApiKey 第三方信号发布方的凭证
// 由后台离线创建，本服务只读，不做任何更新
type ApiKey struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	Name   string `gorm:"type:varchar(64)"`                            // 发布方名称
	Secret string `gorm:"type:varchar(128);not null;uniqueIndex:uk_secret"` // 不透明token
	Active bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ApiKey) TableName() string {
	return "api_keys"
}
