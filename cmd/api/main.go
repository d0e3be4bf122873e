package main

import (
	"time"

	"github.com/prapti31kour/CineCart/internal/config"
	"github.com/prapti31kour/CineCart/internal/domain/model"
	"github.com/prapti31kour/CineCart/internal/handler"
	"github.com/prapti31kour/CineCart/internal/infra/db"
	infraRepo "github.com/prapti31kour/CineCart/internal/infra/repository"
	"github.com/prapti31kour/CineCart/internal/server"
	"github.com/prapti31kour/CineCart/internal/usecase"
	auth "github.com/prapti31kour/CineCart/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// HS256のJWT発行。claimsは {id, email, role}。
type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
}

func (i *jwtIssuer) Issue(id string, email string, role model.Role) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"role":  string(role),
		"iat":   now.Unix(),
		"exp":   now.Add(i.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

func main() {
	//.envは無ければ無いでよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.CartItem{},
		&model.Vcd{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	vcdRepo := infraRepo.NewVcdGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(10)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer（既定7日）
	issuer := &jwtIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(cfg.TokenTTLHours) * time.Hour,
	}

	//Usecase生成
	signupUC := auth.NewSignupUsecase(userRepo, hasher, issuer)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, cfg.AdminEmail, cfg.AdminPassword)
	cartUC := usecase.NewCartUsecase(userRepo, cartRepo)
	checkoutUC := usecase.NewCheckoutUsecase(userRepo, vcdRepo, orderRepo, cartRepo, idGen, clock)
	vcdUC := usecase.NewVcdUsecase(vcdRepo, auditRepo)

	//Handler生成
	authH := handler.NewAuthHandler(signupUC, loginUC)
	cartH := handler.NewCartHandler(cartUC)
	orderH := handler.NewOrderHandler(checkoutUC)
	vcdH := handler.NewVcdHandler(vcdUC)

	//Server起動
	e := server.New(cfg, authH, cartH, orderH, vcdH)
	if err := server.Start(e, ":"+cfg.Port); err != nil {
		panic(err)
	}
}
