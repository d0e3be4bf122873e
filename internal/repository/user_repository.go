package repository

import (
	"context"
	"errors"

	"github.com/prapti31kour/CineCart/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// emailの一意制約違反を統一
var ErrEmailTaken = errors.New("email already registered")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email重複なら ErrEmailTaken）
	Create(ctx context.Context, user *model.User) error
	//正規化済みemailからユーザーを1件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
