package handler

import (
	"errors"
	"net/http"

	auth "github.com/prapti31kour/CineCart/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	signupUC *auth.SignupUsecase
	loginUC  *auth.LoginUsecase
}

// DI
func NewAuthHandler(signupUC *auth.SignupUsecase, loginUC *auth.LoginUsecase) *AuthHandler {
	return &AuthHandler{
		signupUC: signupUC,
		loginUC:  loginUC,
	}
}

// /auth/signup のリクエストボディ。
type SignupRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// /auth/login のリクエストボディ。
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// /auth配下を登録（公開）
func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/signup", h.signup)
	e.POST("/auth/login", h.login)
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.signupUC.Execute(c.Request().Context(), auth.SignupInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields), errors.Is(err, auth.ErrEmailAlreadyExists):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			return writeError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created",
		"user":    out.User,
		"token":   out.Token,
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrIncorrectPassword):
			//間違いパスワードでもトークンは一切発行しない
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			return writeError(c, err)
		}
	}

	msg := "Login successful"
	if out.IsAdmin {
		msg = "Admin login successful"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": msg,
		"user":    out.User,
		"token":   out.Token,
	})
}
