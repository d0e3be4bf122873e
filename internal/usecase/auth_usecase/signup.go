package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/prapti31kour/CineCart/internal/domain/model"
	"github.com/prapti31kour/CineCart/internal/repository"
)

var (
	// 入力が不正
	ErrMissingFields = errors.New("email and password required")

	// 競合
	ErrEmailAlreadyExists = errors.New("Email already registered")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// ハッシュと平文の突き合わせ。
type PasswordVerifier interface {
	Verify(hash string, plain string) bool
}

// 署名付きトークンを発行する約束
type TokenIssuer interface {
	Issue(id string, email string, role model.Role) (string, error)
}

// 会員登録の入力
type SignupInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Password    string
	Role        string
}

// 会員登録の出力
type SignupOutput struct {
	User  model.User
	Token string
}

// SignupUsecaseは会員登録の処理。
type SignupUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
}

// DI
func NewSignupUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
) *SignupUsecase {
	return &SignupUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

// 会員登録実行
func (u *SignupUsecase) Execute(ctx context.Context, in SignupInput) (SignupOutput, error) {
	var out SignupOutput

	email := normEmail(in.Email)

	// 必須チェック
	if email == "" || in.Password == "" {
		return out, ErrMissingFields
	}

	// email重複チェック
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return out, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return out, err
	}

	// パスワードをハッシュ化（平文は保存しない）
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	role := model.RoleUser
	if strings.EqualFold(strings.TrimSpace(in.Role), string(model.RoleAdmin)) {
		role = model.RoleAdmin
	}

	user := &model.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}

	// DBへ保存。一意制約に先を越された場合も重複扱い。
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return out, ErrEmailAlreadyExists
		}
		return out, err
	}

	token, err := u.issuer.Issue(strconv.FormatInt(user.ID, 10), user.Email, user.Role)
	if err != nil {
		return out, err
	}

	out.User = *user
	out.Token = token
	return out, nil
}

// email比較は両辺ともtrim+lowerで揃える
func normEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
