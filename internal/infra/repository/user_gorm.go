package repository

import (
	"context"
	"errors"

	"github.com/prapti31kour/CineCart/internal/domain/model"
	repo "github.com/prapti31kour/CineCart/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// 新規ユーザー作成。emailの一意制約違反は ErrEmailTaken に寄せる。
func (r *UserGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrEmailTaken
		}
		return err
	}
	return nil
}

// 正規化済みemailから1件取得
func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// postgresの23505（unique_violation）かどうか
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
