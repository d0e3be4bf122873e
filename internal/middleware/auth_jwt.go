package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/prapti31kour/CineCart/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey    = "user_id"    // string
	CtxUserEmailKey = "user_email" // string（正規化済み）
	CtxUserRoleKey  = "user_role"  // string
)

// bearerAuth用のJWT検証ミドルウェア。
// "Bearer xxx" 形式とトークン単体の両方を受け付ける（旧クライアント互換）。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := strings.TrimSpace(c.Request().Header.Get("Authorization"))

			rawToken := authz
			if parts := strings.SplitN(authz, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				rawToken = strings.TrimSpace(parts[1])
			}

			if rawToken == "" {
				c.Logger().Warn("jwt verify: no token provided")
				return c.JSON(http.StatusUnauthorized, errorJSON("No token provided"))
			}

			//JWTをパースして検証する
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || token == nil || !token.Valid {
				//原因はログにだけ残し、クライアントには一般化したメッセージを返す
				c.Logger().Warnf("jwt verify error: %v", err)
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid or expired token"))
			}

			//claimsを取り出す
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				c.Logger().Warn("jwt verify: unexpected claims type")
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid or expired token"))
			}

			id, err := parseString(claims["id"])
			if err != nil || id == "" {
				c.Logger().Warn("jwt verify: missing id claim")
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid or expired token"))
			}

			email, err := parseString(claims["email"])
			if err != nil || email == "" {
				c.Logger().Warn("jwt verify: missing email claim")
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid or expired token"))
			}

			role, err := parseString(claims["role"])
			if err != nil {
				role = ""
			}

			//contextへ保存
			c.Set(CtxUserIDKey, id)
			c.Set(CtxUserEmailKey, normEmail(email))
			c.Set(CtxUserRoleKey, role)

			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}

// email比較は両辺ともtrim+lowerで揃える
func normEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
