package service

import (
	"context"
	"errors"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/dto"
	"github.com/linkgrove/link-page-service/pkg/app"
	"github.com/linkgrove/link-page-service/pkg/code"
	"github.com/linkgrove/link-page-service/pkg/timex"
	"github.com/linkgrove/link-page-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册
	Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error)

	// ChangePassword 修改密码
	ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)

	// GetPublicProfile 按用户名获取公开主页信息（不含链接树）
	GetPublicProfile(ctx context.Context, username string) (*dto.ProfileDTO, int64, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, logger *zap.Logger, config *ServiceConfig) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       logger,
		config:       config,
	}
}

var _ UserService = (*userService)(nil)

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       user.UID,
		Email:     user.Email,
		Username:  user.Username,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		UpdatedAt: timex.Time(user.UpdatedAt),
		CreatedAt: timex.Time(user.CreatedAt),
	}
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error) {
	// 检查注册是否启用
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterClosed
	}

	if !util.IsValidUsername(params.Username) {
		return nil, code.ErrorInvalidParams.WithDetails("username must be 3-32 chars of letters, digits, underscore")
	}
	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorInvalidParams.WithDetails("passwords do not match")
	}

	// 检查邮箱是否已存在
	emailUser, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if emailUser != nil {
		return nil, code.ErrorUserExists
	}

	// 检查用户名是否已存在
	nameUser, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if nameUser != nil {
		return nil, code.ErrorUserExists
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	newUser := &domain.User{
		Username: params.Username,
		Email:    params.Email,
		Password: password,
		Nickname: params.Nickname,
	}
	user, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	token, err := s.tokenManager.Generate(user.UID, user.Username, "")
	if err != nil {
		return nil, code.ErrorUserGenerateToken.WithDetails(err.Error())
	}

	result := s.domainToDTO(user)
	result.Token = token
	return result, nil
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error) {
	var user *domain.User
	var err error

	// 凭证可以是邮箱或用户名
	// 安全考虑：查找失败与密码错误返回同一错误，不暴露用户是否存在
	if util.IsValidEmail(params.Credentials) {
		user, err = s.userRepo.GetByEmail(ctx, params.Credentials)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, params.Credentials)
	}
	if err != nil {
		return nil, code.ErrorUserPassword
	}

	if !util.CheckPasswordHash(params.Password, user.Password) {
		return nil, code.ErrorUserPassword
	}

	token, err := s.tokenManager.Generate(user.UID, user.Username, clientIP)
	if err != nil {
		return nil, code.ErrorUserGenerateToken.WithDetails(err.Error())
	}

	result := s.domainToDTO(user)
	result.Token = token
	return result, nil
}

// ChangePassword 修改密码
func (s *userService) ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error {
	if params.Password != params.ConfirmPassword {
		return code.ErrorInvalidParams.WithDetails("passwords do not match")
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if !util.CheckPasswordHash(params.OldPassword, user.Password) {
		return code.ErrorUserPassword
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	if err := s.userRepo.UpdatePassword(ctx, password, uid); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(user), nil
}

// GetPublicProfile 按用户名获取公开主页信息
// 链接树由调用方按公开视图另行组装
func (s *userService) GetPublicProfile(ctx context.Context, username string) (*dto.ProfileDTO, int64, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, code.ErrorUserNotFound
		}
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return &dto.ProfileDTO{
		Username: user.Username,
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
	}, user.UID, nil
}
