package service

import (
	"errors"
	"strings"

	"blog_platform/internal/domain/user/model"
	"blog_platform/internal/domain/user/repository"
	"blog_platform/internal/pkg/roles"
	"blog_platform/pkg/apperrors"
	"blog_platform/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthResult 注册/登录结果
type AuthResult struct {
	User  model.PublicProfile `json:"user"`
	Token string              `json:"token"`
}

// StatsResult 系统统计
type StatsResult struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalArticles int64 `json:"totalArticles"`
	TotalComments int64 `json:"totalComments"`
}

type UserService interface {
	Register(username, email, password string) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	GetByID(id string) (*model.User, error)
	GetList(page, limit int) ([]model.PublicProfile, int64, error)
	UpdateRole(actorID, targetID, role string) (*model.PublicProfile, string, error)
	DeleteUser(actorID, targetID string) error
	Stats() (*StatsResult, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register 注册新用户，默认角色 Reader
func (s *userService) Register(username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, apperrors.Validation("Username and email are required")
	}
	if len(password) < 6 {
		return nil, apperrors.Validation("Password must be at least 6 characters")
	}

	if _, err := s.repo.GetByUsername(username); err == nil {
		return nil, apperrors.Conflict("Username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Error checking username", err)
	}
	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, apperrors.Conflict("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Error checking email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Error hashing password", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     roles.RoleReader,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, apperrors.Internal("Error creating user", err)
	}

	token, _, err := utils.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal("Error generating token", err)
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Login 邮箱+密码登录
func (s *userService) Login(email, password string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Authentication("Invalid credentials")
		}
		return nil, apperrors.Internal("Error fetching user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Authentication("Invalid credentials")
	}

	token, _, err := utils.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal("Error generating token", err)
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

func (s *userService) GetByID(id string) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("Error fetching user", err)
	}
	return user, nil
}

func (s *userService) GetList(page, limit int) ([]model.PublicProfile, int64, error) {
	offset := (page - 1) * limit
	users, total, err := s.repo.GetList(offset, limit)
	if err != nil {
		return nil, 0, apperrors.Internal("Error fetching users", err)
	}

	profiles := make([]model.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return profiles, total, nil
}

// UpdateRole 修改用户角色，仅 Admin 调用；禁止修改自己的角色
// 返回更新后的用户与旧角色
func (s *userService) UpdateRole(actorID, targetID, role string) (*model.PublicProfile, string, error) {
	if targetID == actorID {
		return nil, "", apperrors.Validation("You cannot change your own role")
	}
	if !roles.IsValidRole(role) {
		return nil, "", apperrors.Validation("Invalid role")
	}

	user, err := s.repo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.NotFound("User not found")
		}
		return nil, "", apperrors.Internal("Error fetching user", err)
	}

	oldRole := string(user.Role)
	user.Role = roles.Role(role)
	if err := s.repo.Update(user); err != nil {
		return nil, "", apperrors.Internal("Error updating user role", err)
	}

	profile := user.Public()
	return &profile, oldRole, nil
}

// DeleteUser 删除用户，仅 Admin 调用；禁止删除自己
func (s *userService) DeleteUser(actorID, targetID string) error {
	if targetID == actorID {
		return apperrors.Validation("You cannot delete your own account")
	}

	user, err := s.repo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal("Error fetching user", err)
	}

	if err := s.repo.Delete(user); err != nil {
		return apperrors.Internal("Error deleting user", err)
	}
	return nil
}

func (s *userService) Stats() (*StatsResult, error) {
	users, articles, comments, err := s.repo.Stats()
	if err != nil {
		return nil, apperrors.Internal("Error fetching statistics", err)
	}
	return &StatsResult{
		TotalUsers:    users,
		TotalArticles: articles,
		TotalComments: comments,
	}, nil
}
