package model

import (
	"time"
)

type Login struct {
	Id                   uint       `gorm:"primaryKey;autoIncrement"`
	Email                string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash         string     `gorm:"column:password;type:varchar(255);not null"`
	NoOfTimeLoggedIn     int        `gorm:"column:no_of_time_logged_in;not null;default:0"`
	LatestLoginTimeStamp *time.Time `gorm:"column:latest_login_time_stamp"`
	CreatedAt            time.Time  `gorm:"autoCreateTime"`
}

func (Login) TableName() string {
	return "login"
}
