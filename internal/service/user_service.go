package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lavtracker/backend/internal/dto"
	"lavtracker/backend/internal/model"
	"lavtracker/backend/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCodeExists       = errors.New("code already in use")
	ErrEmailExists      = errors.New("email already in use")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
	ErrSessionRequired  = errors.New("session required")
	ErrAdminRequired    = errors.New("admin privileges required")
)

// UserService 用户管理业务接口
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	// Create 创建用户；库中尚无用户时允许匿名创建，且首个用户自动成为管理员
	Create(ctx context.Context, req *dto.CreateUserRequest, caller *dto.Caller) ([]model.User, error)
	Update(ctx context.Context, req *dto.UpdateUserRequest) ([]model.User, error)
	Delete(ctx context.Context, userID uint, caller *dto.Caller) ([]model.User, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, caller *dto.Caller) ([]model.User, error) {
	email := strings.TrimSpace(req.Email)
	code := normalizeCode(req.Code)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		count, err := tx.User.Count(ctx)
		if err != nil {
			return err
		}
		bootstrap := count == 0
		if !bootstrap {
			if caller == nil {
				return ErrSessionRequired
			}
			if !caller.IsAdmin {
				return ErrAdminRequired
			}
		}

		if err := s.checkUnique(ctx, tx, 0, email, code); err != nil {
			return err
		}

		user := &model.User{
			Username: strings.TrimSpace(req.Username),
			Email:    email,
			Code:     code,
			IsAdmin:  bootstrap,
			Active:   true,
		}
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user.PasswordHash = string(hash)
		}
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}

		if bootstrap {
			s.logger.Info("已创建首个用户并设为管理员", zap.Uint("user_id", user.UserID))
		}
		return nil
	})
	if err != nil {
		if !isUserBusinessError(err) {
			s.logger.Error("创建用户失败", zap.Error(err))
		}
		return nil, err
	}

	return s.List(ctx)
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, req *dto.UpdateUserRequest) ([]model.User, error) {
	email := strings.TrimSpace(req.Email)
	code := normalizeCode(req.Code)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		user, err := tx.User.GetByID(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := s.checkUnique(ctx, tx, user.UserID, email, code); err != nil {
			return err
		}

		user.Username = strings.TrimSpace(req.Username)
		user.Email = email
		if code != nil {
			user.Code = code
		}
		if req.IsAdmin != nil {
			user.IsAdmin = *req.IsAdmin
		}
		if req.Active != nil {
			user.Active = *req.Active
		}
		if req.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user.PasswordHash = string(hash)
		}

		return tx.User.Update(ctx, user)
	})
	if err != nil {
		if !isUserBusinessError(err) {
			s.logger.Error("更新用户失败", zap.Uint("user_id", req.UserID), zap.Error(err))
		}
		return nil, err
	}

	return s.List(ctx)
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, userID uint, caller *dto.Caller) ([]model.User, error) {
	if caller != nil && caller.UserID == userID {
		return nil, ErrCannotDeleteSelf
	}

	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.User.Delete(ctx, userID); err != nil {
		s.logger.Error("删除用户失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	return s.List(ctx)
}

// ── 内部辅助方法 ──

// checkUnique 校验邮箱与清洁码未被其他用户占用，selfID 为 0 表示新建
func (s *userService) checkUnique(ctx context.Context, tx *repository.Repository, selfID uint, email string, code *string) error {
	existing, err := tx.User.GetByEmail(ctx, email)
	if err == nil && existing.UserID != selfID {
		return ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if code == nil {
		return nil
	}
	existing, err = tx.User.GetByCode(ctx, *code)
	if err == nil && existing.UserID != selfID {
		return ErrCodeExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func normalizeCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func isUserBusinessError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrCodeExists) ||
		errors.Is(err, ErrSessionRequired) ||
		errors.Is(err, ErrAdminRequired)
}
