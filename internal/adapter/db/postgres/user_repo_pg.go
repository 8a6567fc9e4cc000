package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-service/internal/domain/user"
)

// UserRepoPG implements the Repository interface on a relational store through GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
// Name, Email, and Priority are nullable; only ID carries constraints.
type UserSchema struct {
	ID       int64   `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Name     *string // User's full name (nullable)
	Email    *string // User's email address (nullable, no uniqueness enforced)
	Priority *int    // User's priority (nullable, equality lookups only)
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func toDomain(m *UserSchema) *user.User {
	return &user.User{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Priority: m.Priority,
	}
}

// FindAll retrieves every user from the database in primary-key order.
func (r *UserRepoPG) FindAll(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i := range models {
		users[i] = *toDomain(&models[i])
	}
	return users, nil
}

// FindByID retrieves a user by their unique ID.
// A missing row is not an error: it returns (nil, nil).
func (r *UserRepoPG) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.Int64("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toDomain(&model), nil
}

// FindByPriority retrieves all users whose priority equals the given value.
func (r *UserRepoPG) FindByPriority(ctx context.Context, priority int) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Where("priority = ?", priority).Find(&models).Error; err != nil {
		r.log.Error("failed to list users by priority from db", zap.Error(err), zap.Int("priority", priority))
		return nil, fmt.Errorf("failed to list users by priority: %w", err)
	}

	users := make([]user.User, len(models))
	for i := range models {
		users[i] = *toDomain(&models[i])
	}
	return users, nil
}

// Save persists a user and reports whether the row was created or updated.
// A zero ID inserts a new row and assigns a fresh id. A non-zero ID fully
// overwrites the row with that id: nil fields are written as NULL, never
// merged with existing values. An ID that matches no row inserts the row
// with that id and reports a create.
func (r *UserRepoPG) Save(ctx context.Context, u *user.User) (*user.User, user.SaveOutcome, error) {
	if u == nil {
		return nil, 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Priority: u.Priority,
	}

	if u.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			r.log.Error("failed to create user in db", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to create user: %w", err)
		}
		r.log.Info("user created in db", zap.Int64("id", model.ID))
		return toDomain(&model), user.SaveOutcomeCreated, nil
	}

	// Map-based updates so nil pointers overwrite columns with NULL.
	res := r.db.WithContext(ctx).Model(&UserSchema{}).Where("id = ?", u.ID).Updates(map[string]any{
		"name":     u.Name,
		"email":    u.Email,
		"priority": u.Priority,
	})
	if res.Error != nil {
		r.log.Error("failed to update user in db", zap.Error(res.Error), zap.Int64("id", u.ID))
		return nil, 0, fmt.Errorf("failed to update user: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		// No row with this id yet: insert it under the caller's id.
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			r.log.Error("failed to create user with explicit id in db", zap.Error(err), zap.Int64("id", u.ID))
			return nil, 0, fmt.Errorf("failed to create user: %w", err)
		}
		r.log.Info("user created in db with explicit id", zap.Int64("id", model.ID))
		return toDomain(&model), user.SaveOutcomeCreated, nil
	}

	r.log.Info("user updated in db", zap.Int64("id", u.ID))
	return toDomain(&model), user.SaveOutcomeUpdated, nil
}

// DeleteByID removes the user with the given id and reports whether a row
// was actually removed. Storage failures are returned as errors, never folded
// into the outcome.
func (r *UserRepoPG) DeleteByID(ctx context.Context, id int64) (user.DeleteOutcome, error) {
	res := r.db.WithContext(ctx).Delete(&UserSchema{}, id)
	if res.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(res.Error), zap.Int64("id", id))
		return 0, fmt.Errorf("failed to delete user: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		r.log.Debug("delete matched no row", zap.Int64("id", id))
		return user.DeleteOutcomeNotFound, nil
	}

	r.log.Info("user deleted in db", zap.Int64("id", id))
	return user.DeleteOutcomeDeleted, nil
}
