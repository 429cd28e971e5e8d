package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"chirpfeed/internal/auth"
	"chirpfeed/internal/errors"
	"chirpfeed/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		setupMocks func(repo *MockUserRepository)
		wantErr    error
	}{
		{
			name:     "creates user and issues token",
			username: "alice",
			setupMocks: func(repo *MockUserRepository) {
				repo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			wantErr: nil,
		},
		{
			name:     "duplicate username yields conflict",
			username: "alice",
			setupMocks: func(repo *MockUserRepository) {
				repo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:       uuid.New(),
					Username: "alice",
				}, nil)
			},
			wantErr: errors.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMocks(repo)
			svc := NewAuthService(repo, auth.NewJWTService("test-secret"))

			user, token, err := svc.Register(context.Background(), tt.username, "password123")

			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEqual(t, "password123", user.PasswordHash)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	assert.NoError(t, err)
	stored := &model.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: string(hashed),
		Bio:          "hello",
	}

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(repo *MockUserRepository)
		wantErr    error
	}{
		{
			name:     "valid credentials",
			username: "alice",
			password: "password123",
			setupMocks: func(repo *MockUserRepository) {
				repo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
			},
			wantErr: nil,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "not-the-password",
			setupMocks: func(repo *MockUserRepository) {
				repo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
			},
			wantErr: errors.ErrInvalidCredentials,
		},
		{
			name:     "unknown username",
			username: "bob",
			password: "password123",
			setupMocks: func(repo *MockUserRepository) {
				repo.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMocks(repo)
			svc := NewAuthService(repo, auth.NewJWTService("test-secret"))

			user, token, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored.ID, user.ID)
				assert.NotEmpty(t, token)
			}
			repo.AssertExpectations(t)
		})
	}
}
