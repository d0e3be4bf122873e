package auth

import (
	"context"
	"errors"
	"strconv"

	"github.com/prapti31kour/CineCart/internal/domain/model"
	"github.com/prapti31kour/CineCart/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("User not found")
	ErrIncorrectPassword = errors.New("Incorrect password")
)

// ログインの入力
type LoginInput struct {
	Email    string
	Password string
}

// ログインの出力
type LoginOutput struct {
	User    model.User
	Token   string
	IsAdmin bool // 管理者ブートストラップでのログインか
}

// LoginUsecaseはログインの処理。
// 管理者ブートストラップ資格（設定から注入）を先に判定し、
// 一致しなければ通常のアカウント照合に落ちる。
type LoginUsecase struct {
	userRepo      repository.UserRepository
	verifier      PasswordVerifier
	issuer        TokenIssuer
	adminEmail    string
	adminPassword string
}

// DI
func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	adminEmail string,
	adminPassword string,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:      userRepo,
		verifier:      verifier,
		issuer:        issuer,
		adminEmail:    normEmail(adminEmail),
		adminPassword: adminPassword,
	}
}

// ログイン実行
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	email := normEmail(in.Email)

	// 管理者ブートストラップの近道
	if email != "" && email == u.adminEmail && in.Password == u.adminPassword {
		token, err := u.issuer.Issue("admin", u.adminEmail, model.RoleAdmin)
		if err != nil {
			return out, err
		}

		out.User = model.User{Email: u.adminEmail, Role: model.RoleAdmin}
		out.Token = token
		out.IsAdmin = true
		return out, nil
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return out, ErrUserNotFound
	}
	if err != nil {
		return out, err
	}

	if !u.verifier.Verify(user.PasswordHash, in.Password) {
		return out, ErrIncorrectPassword
	}

	token, err := u.issuer.Issue(strconv.FormatInt(user.ID, 10), user.Email, user.Role)
	if err != nil {
		return out, err
	}

	out.User = *user
	out.Token = token
	return out, nil
}
