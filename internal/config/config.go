package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret     string // JWT署名シークレット
	TokenTTLHours int    // トークン有効期限（時間、既定168=7日）

	AdminEmail    string // 管理者ブートストラップのメール
	AdminPassword string // 管理者ブートストラップのパスワード（旧式互換パス用）

	FEURL string // フロントURL（CORSで使う、空なら全許可）
}

// Loadは環境変数から設定を組み立てる。
// 管理者資格はここで読み込み、ゲートへは構築時に注入する（グローバルでは持たない）。
func Load() (Config, error) {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTLHours: 168,
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		FEURL:         os.Getenv("FE_URL"),
	}

	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("TOKEN_TTL_HOURS must be a positive number")
		}
		cfg.TokenTTLHours = ttl
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminEmail == "" {
		return Config{}, fmt.Errorf("ADMIN_EMAIL is required")
	}
	if cfg.AdminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
