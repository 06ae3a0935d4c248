package mapper

import (
	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/model"
)

type AccountMapper struct{}

func NewAccountMapper() *AccountMapper {
	return &AccountMapper{}
}

func (m *AccountMapper) ToEntity(l *model.Login) *entity.Account {
	if l == nil {
		return nil
	}
	return &entity.Account{
		Id:           l.Id,
		Email:        l.Email,
		PasswordHash: l.PasswordHash,
		LoginCount:   l.NoOfTimeLoggedIn,
		LastLoginAt:  l.LatestLoginTimeStamp,
		CreatedAt:    l.CreatedAt,
	}
}

func (m *AccountMapper) ToModel(a *entity.Account) *model.Login {
	if a == nil {
		return nil
	}
	return &model.Login{
		Id:                   a.Id,
		Email:                a.Email,
		PasswordHash:         a.PasswordHash,
		NoOfTimeLoggedIn:     a.LoginCount,
		LatestLoginTimeStamp: a.LastLoginAt,
		CreatedAt:            a.CreatedAt,
	}
}
