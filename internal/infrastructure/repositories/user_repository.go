package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/you/learnsvc/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:255"`
	Email          string `gorm:"uniqueIndex;size:255"`
	PasswordHash   string `gorm:"column:password"`
	AvatarPublicID string `gorm:"size:255"`
	AvatarURL      string `gorm:"size:512"`
	Role           string `gorm:"index;size:64;default:user"`
	IsVerified     bool
	Courses        []DBUserCourse `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// DBUserCourse links a user to a course they have access to
type DBUserCourse struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"index"`
	CourseID string `gorm:"size:64"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// TableName returns the table name for GORM
func (DBUserCourse) TableName() string {
	return "user_courses"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. A concurrent create with the
// same email loses on the unique index and surfaces as ErrEmailTaken.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.find(ctx, "email = ?", email)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// FindByEmailWithPassword implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, "email = ?", email)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := r.find(ctx, "id = ?", id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// FindByIDWithPassword implements domain.UserRepository
func (r *UserRepositoryImpl) FindByIDWithPassword(ctx context.Context, id uint) (*domain.User, error) {
	return r.find(ctx, "id = ?", id)
}

// Update implements domain.UserRepository. Only identity and credential
// columns change through this service; course links are managed elsewhere.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	updates := map[string]interface{}{
		"name":             user.Name,
		"email":            user.Email,
		"avatar_public_id": user.Avatar.PublicID,
		"avatar_url":       user.Avatar.URL,
	}
	if user.PasswordHash != "" {
		updates["password"] = user.PasswordHash
	}
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", user.ID).Updates(updates).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) find(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Preload("Courses").Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		AvatarPublicID: user.Avatar.PublicID,
		AvatarURL:      user.Avatar.URL,
		Role:           user.Role,
		IsVerified:     user.IsVerified,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	courses := make([]string, 0, len(dbUser.Courses))
	for _, c := range dbUser.Courses {
		courses = append(courses, c.CourseID)
	}
	return &domain.User{
		ID:           dbUser.ID,
		Name:         dbUser.Name,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		Avatar:       domain.Avatar{PublicID: dbUser.AvatarPublicID, URL: dbUser.AvatarURL},
		Role:         dbUser.Role,
		IsVerified:   dbUser.IsVerified,
		Courses:      courses,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
