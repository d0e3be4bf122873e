package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/prapti31kour/CineCart/internal/config"

	"github.com/labstack/echo/v4"
)

// DELETE/PATCHのbodyに旧式の管理者資格が入ってくる場合がある
type legacyAdminCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminGate は管理操作の可否を判定します。
// 1) JWT由来のidentityがあれば role==admin か、管理者メール一致で許可
// 2) 無ければ旧式のbody {email, password} 完全一致で許可
// 3) どちらでもなければ403
func AdminGate(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//JWT経由（AuthJWTが先に走っている前提）
			role, _ := c.Get(CtxUserRoleKey).(string)
			email, _ := c.Get(CtxUserEmailKey).(string)

			if role != "" || email != "" {
				if strings.EqualFold(strings.TrimSpace(role), "admin") {
					return next(c)
				}
				if email != "" && email == normEmail(cfg.AdminEmail) {
					return next(c)
				}
			}

			//旧式のbodyチェック（互換のため残している）
			creds, restoreErr := peekLegacyCredentials(c)
			if restoreErr != nil {
				c.Logger().Errorf("admin gate: body read error: %v", restoreErr)
				return c.JSON(http.StatusInternalServerError, errorJSON("Server error in admin gate"))
			}

			if creds.Email != "" && creds.Password != "" {
				if normEmail(creds.Email) == normEmail(cfg.AdminEmail) && creds.Password == cfg.AdminPassword {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorJSON("Access denied. Admin only."))
		}
	}
}

// bodyから資格情報を覗き見て、後段のBindのためにbodyを差し戻す
func peekLegacyCredentials(c echo.Context) (legacyAdminCredentials, error) {
	var creds legacyAdminCredentials

	req := c.Request()
	if req.Body == nil {
		return creds, nil
	}

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return creds, err
	}
	req.Body = io.NopCloser(bytes.NewReader(b))

	if len(b) > 0 {
		// 不正なJSONは資格情報なし扱い（ここでは落とさない）
		_ = json.Unmarshal(b, &creds)
	}
	return creds, nil
}
