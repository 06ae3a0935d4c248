package entity

import "time"

type Account struct {
	Id           uint
	Email        string
	PasswordHash string
	LoginCount   int
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}
