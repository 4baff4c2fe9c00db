package repository

import (
	"errors"

	"gorm.io/gorm"
)

func NewPostgresStore(db *gorm.DB) Store {
	return Store{
		Branches:  NewBranchRepository(db),
		Users:     NewUserRepository(db),
		Traffic:   NewTrafficEventRepository(db),
		Bills:     NewBillRepository(db),
		Dashboard: NewDashboardRepository(db),
		Sessions:  NewSessionRepository(db),
		LoginLogs: NewLoginLogRepository(db),
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// affected turns a write that matched no row into ErrNotFound.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
