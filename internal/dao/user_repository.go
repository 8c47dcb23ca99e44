package dao

import (
	"context"
	"time"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/model"
	"github.com/linkgrove/link-page-service/pkg/convert"
	"github.com/linkgrove/link-page-service/pkg/timex"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	dao.useModel("User")
	return &userRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
// 字段同名同构，时间戳单独转换
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	u := convert.StructAssign(m, &domain.User{}).(*domain.User)
	u.CreatedAt = time.Time(m.CreatedAt)
	u.UpdatedAt = time.Time(m.UpdatedAt)
	return u
}

// toModel 将领域模型转换为数据库模型
func (r *userRepository) toModel(user *domain.User) *model.User {
	if user == nil {
		return nil
	}
	m := convert.StructAssign(user, &model.User{}).(*model.User)
	m.CreatedAt = timex.Time(user.CreatedAt)
	m.UpdatedAt = timex.Time(user.UpdatedAt)
	return m
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	if err := r.dao.orm(ctx).Where("uid = ?", uid).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m model.User
	if err := r.dao.orm(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	if err := r.dao.orm(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.dao.orm(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdatePassword 更新用户密码
func (r *userRepository) UpdatePassword(ctx context.Context, password string, uid int64) error {
	return r.dao.orm(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"password":   password,
			"updated_at": timex.Now(),
		}).Error
}
