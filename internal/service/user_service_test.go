package service

import (
	"context"
	"errors"
	"testing"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/dto"
	"github.com/linkgrove/link-page-service/pkg/app"
	"github.com/linkgrove/link-page-service/pkg/code"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	domain.UserRepository
	users  map[int64]*domain.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (m *mockUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	if u, ok := m.users[uid]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	cp := *user
	cp.UID = m.nextID
	m.nextID++
	m.users[cp.UID] = &cp
	out := cp
	return &out, nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, password string, uid int64) error {
	if u, ok := m.users[uid]; ok {
		u.Password = password
	}
	return nil
}

func newTestUserService(repo domain.UserRepository, registerEnabled bool) UserService {
	return NewUserService(
		repo,
		app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret"}),
		zap.NewNop(),
		&ServiceConfig{User: UserServiceConfig{RegisterIsEnable: registerEnabled}},
	)
}

func TestUserRegisterAndLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo, true)
	ctx := context.Background()

	created, err := svc.Register(ctx, &dto.UserCreateRequest{
		Email:           "amy@example.com",
		Username:        "amy_links",
		Password:        "secret-password",
		ConfirmPassword: "secret-password",
		Nickname:        "Amy",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if created.Token == "" {
		t.Error("register must return a token")
	}

	// 用户名登录
	logged, err := svc.Login(ctx, &dto.UserLoginRequest{Credentials: "amy_links", Password: "secret-password"}, "127.0.0.1")
	if err != nil {
		t.Fatalf("Login by username failed: %v", err)
	}
	if logged.UID != created.UID {
		t.Errorf("uid = %d, want %d", logged.UID, created.UID)
	}

	// 邮箱登录
	if _, err := svc.Login(ctx, &dto.UserLoginRequest{Credentials: "amy@example.com", Password: "secret-password"}, ""); err != nil {
		t.Fatalf("Login by email failed: %v", err)
	}

	// 错误密码与不存在的用户返回同一错误
	_, err = svc.Login(ctx, &dto.UserLoginRequest{Credentials: "amy_links", Password: "wrong"}, "")
	var c *code.Code
	if !errors.As(err, &c) || c.Code() != code.ErrorUserPassword.Code() {
		t.Fatalf("wrong password err = %v, want ErrorUserPassword", err)
	}
	_, err = svc.Login(ctx, &dto.UserLoginRequest{Credentials: "nobody", Password: "whatever"}, "")
	if !errors.As(err, &c) || c.Code() != code.ErrorUserPassword.Code() {
		t.Fatalf("unknown user err = %v, want ErrorUserPassword", err)
	}
}

func TestUserRegister_Rejections(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo, true)
	ctx := context.Background()

	base := dto.UserCreateRequest{
		Email:           "amy@example.com",
		Username:        "amy_links",
		Password:        "secret-password",
		ConfirmPassword: "secret-password",
	}
	if _, err := svc.Register(ctx, &base); err != nil {
		t.Fatalf("seed register failed: %v", err)
	}

	tests := []struct {
		name     string
		mutate   func(r *dto.UserCreateRequest)
		wantCode int
	}{
		{"duplicate email", func(r *dto.UserCreateRequest) { r.Username = "other_name" }, code.ErrorUserExists.Code()},
		{"duplicate username", func(r *dto.UserCreateRequest) { r.Email = "other@example.com" }, code.ErrorUserExists.Code()},
		{"password mismatch", func(r *dto.UserCreateRequest) {
			r.Email = "x@example.com"
			r.Username = "x_name"
			r.ConfirmPassword = "different"
		}, code.ErrorInvalidParams.Code()},
		{"bad username", func(r *dto.UserCreateRequest) {
			r.Email = "y@example.com"
			r.Username = "no spaces!"
		}, code.ErrorInvalidParams.Code()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := svc.Register(ctx, &req)
			var c *code.Code
			if !errors.As(err, &c) || c.Code() != tt.wantCode {
				t.Fatalf("err = %v, want code %d", err, tt.wantCode)
			}
		})
	}
}

func TestUserRegister_Closed(t *testing.T) {
	svc := newTestUserService(newMockUserRepo(), false)

	_, err := svc.Register(context.Background(), &dto.UserCreateRequest{
		Email: "a@example.com", Username: "abc", Password: "secret-password", ConfirmPassword: "secret-password",
	})
	var c *code.Code
	if !errors.As(err, &c) || c.Code() != code.ErrorUserRegisterClosed.Code() {
		t.Fatalf("err = %v, want ErrorUserRegisterClosed", err)
	}
}

func TestUserChangePassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo, true)
	ctx := context.Background()

	created, err := svc.Register(ctx, &dto.UserCreateRequest{
		Email: "a@example.com", Username: "abc", Password: "old-password-1", ConfirmPassword: "old-password-1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err = svc.ChangePassword(ctx, created.UID, &dto.UserChangePasswordRequest{
		OldPassword: "old-password-1", Password: "new-password-2", ConfirmPassword: "new-password-2",
	})
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := svc.Login(ctx, &dto.UserLoginRequest{Credentials: "abc", Password: "new-password-2"}, ""); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.UserLoginRequest{Credentials: "abc", Password: "old-password-1"}, ""); err == nil {
		t.Fatal("login with old password should fail")
	}
}

func TestUserGetPublicProfile(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo, true)
	ctx := context.Background()

	created, err := svc.Register(ctx, &dto.UserCreateRequest{
		Email: "a@example.com", Username: "abc", Password: "secret-password", ConfirmPassword: "secret-password", Nickname: "Abc",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	profile, uid, err := svc.GetPublicProfile(ctx, "abc")
	if err != nil {
		t.Fatalf("GetPublicProfile failed: %v", err)
	}
	if uid != created.UID || profile.Username != "abc" || profile.Nickname != "Abc" {
		t.Errorf("profile = %+v uid = %d", profile, uid)
	}

	_, _, err = svc.GetPublicProfile(ctx, "missing")
	var c *code.Code
	if !errors.As(err, &c) || c.Code() != code.ErrorUserNotFound.Code() {
		t.Fatalf("err = %v, want ErrorUserNotFound", err)
	}
}
