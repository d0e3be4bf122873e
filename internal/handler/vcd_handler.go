package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/prapti31kour/CineCart/internal/config"
	"github.com/prapti31kour/CineCart/internal/middleware"
	repo "github.com/prapti31kour/CineCart/internal/repository"
	"github.com/prapti31kour/CineCart/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのHTTPErrorをクライアント向けに変換する。
// 生のエラーはログにだけ残す。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	c.Logger().Error(err)

	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
}

// /vcds のHTTP
type VcdHandler struct {
	uc *usecase.VcdUsecase
}

// DI
func NewVcdHandler(uc *usecase.VcdUsecase) *VcdHandler {
	return &VcdHandler{uc: uc}
}

// POST /vcds のリクエストボディ
type VcdRequest struct {
	VcdID        string   `json:"vcdID"`
	VcdName      string   `json:"vcdName"`
	VcdImage     []string `json:"vcdImage"`
	Summary      string   `json:"summary"`
	Year         int      `json:"year"`
	CastLeads    []string `json:"castLeads"`
	CastFeatured []string `json:"castFeatured"`
	Genre        string   `json:"genre"`
	GenreTags    []string `json:"genreTags"`
	Language     string   `json:"language"`
	Category     string   `json:"category"`
	Rating       float64  `json:"rating"`
	Director     string   `json:"director"`
	RuntimeMin   int      `json:"runtimeMinutes"`
	Quantity     int64    `json:"quantity"`
	Cost         float64  `json:"cost"`
}

// PATCH /vcds/by-name/:name のリクエストボディ。
// 来たフィールドだけ上書きする部分更新なので全部ポインタ。
type VcdPatchRequest struct {
	VcdName      *string   `json:"vcdName"`
	VcdImage     *[]string `json:"vcdImage"`
	Summary      *string   `json:"summary"`
	Year         *int      `json:"year"`
	CastLeads    *[]string `json:"castLeads"`
	CastFeatured *[]string `json:"castFeatured"`
	Genre        *string   `json:"genre"`
	GenreTags    *[]string `json:"genreTags"`
	Language     *string   `json:"language"`
	Category     *string   `json:"category"`
	Rating       *float64  `json:"rating"`
	Director     *string   `json:"director"`
	RuntimeMin   *int      `json:"runtimeMinutes"`
	Quantity     *int64    `json:"quantity"`
	Cost         *float64  `json:"cost"`
}

// PATCH /vcds/decrease のリクエストボディ
type DecreaseRequest struct {
	VcdID    string  `json:"vcdID"`
	VcdName  string  `json:"vcdName"`
	Quantity float64 `json:"quantity"`
}

// /vcds のルートを登録。
// 読み取りは公開、書き込みは JWT＋管理者ゲート。
// 画像一覧だけは要トークン（一覧は公開のまま）。
func (h *VcdHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	authJWT := middleware.AuthJWT(cfg)
	adminGate := middleware.AdminGate(cfg)

	e.GET("/vcds", h.list)
	e.GET("/vcds/by-ids", h.listByIDs)
	e.GET("/vcds/by-id/:vcdID", h.detail)
	e.PATCH("/vcds/decrease", h.decrease)
	e.GET("/vcds/images/:vcdID", h.images, authJWT)

	e.POST("/vcds", h.create, authJWT, adminGate)
	e.DELETE("/vcds/by-name/:name", h.deleteByName, authJWT, adminGate)
	e.PATCH("/vcds/by-name/:name", h.updateByName, authJWT, adminGate)
}

func (h *VcdHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VcdHandler) listByIDs(c echo.Context) error {
	ids := strings.Split(c.QueryParam("ids"), ",")

	out, err := h.uc.GetByIDs(c.Request().Context(), ids)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VcdHandler) detail(c echo.Context) error {
	out, err := h.uc.GetByID(c.Request().Context(), c.Param("vcdID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VcdHandler) images(c echo.Context) error {
	out, err := h.uc.Images(c.Request().Context(), c.Param("vcdID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VcdHandler) create(c echo.Context) error {
	var req VcdRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	actor, _ := getEmailFromContext(c)

	out, err := h.uc.AdminCreate(c.Request().Context(), actor, usecase.VcdInput{
		VcdID:        req.VcdID,
		Name:         req.VcdName,
		Images:       req.VcdImage,
		Summary:      req.Summary,
		Year:         req.Year,
		CastLeads:    req.CastLeads,
		CastFeatured: req.CastFeatured,
		Genre:        req.Genre,
		GenreTags:    req.GenreTags,
		Language:     req.Language,
		Category:     req.Category,
		Rating:       req.Rating,
		Director:     req.Director,
		RuntimeMin:   req.RuntimeMin,
		Quantity:     req.Quantity,
		Cost:         req.Cost,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "VCD added successfully",
		"data":    out,
	})
}

func (h *VcdHandler) updateByName(c echo.Context) error {
	var req VcdPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	actor, _ := getEmailFromContext(c)

	out, err := h.uc.AdminUpdateByName(c.Request().Context(), actor, c.Param("name"), repo.VcdPatch{
		Name:         req.VcdName,
		Images:       req.VcdImage,
		Summary:      req.Summary,
		Year:         req.Year,
		CastLeads:    req.CastLeads,
		CastFeatured: req.CastFeatured,
		Genre:        req.Genre,
		GenreTags:    req.GenreTags,
		Language:     req.Language,
		Category:     req.Category,
		Rating:       req.Rating,
		Director:     req.Director,
		RuntimeMin:   req.RuntimeMin,
		Quantity:     req.Quantity,
		Cost:         req.Cost,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "VCD updated successfully",
		"data":    out,
	})
}

func (h *VcdHandler) deleteByName(c echo.Context) error {
	actor, _ := getEmailFromContext(c)

	if err := h.uc.AdminDeleteByName(c.Request().Context(), actor, c.Param("name")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "VCD deleted successfully"})
}

func (h *VcdHandler) decrease(c echo.Context) error {
	var req DecreaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Decrease(c.Request().Context(), usecase.DecreaseInput{
		VcdID:    req.VcdID,
		Name:     req.VcdName,
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	label := req.VcdName
	if label == "" {
		label = req.VcdID
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Quantity of '%s' decreased by %d", label, int64(req.Quantity)),
		"data":    out,
	})
}
