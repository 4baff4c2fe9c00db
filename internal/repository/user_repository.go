package repository

import (
	"context"

	"gorm.io/gorm"

	"footfall-service/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", user.Username).
		Updates(map[string]interface{}{
			"name":           user.Name,
			"role":           user.Role,
			"branch":         user.Branch,
			"password_hash":  user.PasswordHash,
			"is_first_login": user.IsFirstLogin,
		})
	return affected(res)
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	return affected(r.db.WithContext(ctx).Where("username = ?", username).Delete(&model.User{}))
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
