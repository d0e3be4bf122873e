package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/prapti31kour/CineCart/internal/domain/model"
	repo "github.com/prapti31kour/CineCart/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// VcdUsecase は /vcds の業務ロジックです。
type VcdUsecase struct {
	vcdRepo   repo.VcdRepository
	auditRepo repo.AuditLogRepository
}

// DI
func NewVcdUsecase(vcdRepo repo.VcdRepository, auditRepo repo.AuditLogRepository) *VcdUsecase {
	return &VcdUsecase{
		vcdRepo:   vcdRepo,
		auditRepo: auditRepo,
	}
}

// POST /vcds の入力DTO
type VcdInput struct {
	VcdID        string
	Name         string
	Images       []string
	Summary      string
	Year         int
	CastLeads    []string
	CastFeatured []string
	Genre        string
	GenreTags    []string
	Language     string
	Category     string
	Rating       float64
	Director     string
	RuntimeMin   int
	Quantity     int64
	Cost         float64
}

// 全作品（公開）
func (u *VcdUsecase) List(ctx context.Context) ([]model.Vcd, error) {
	vcds, err := u.vcdRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return vcds, nil
}

// idリストでまとめて取得（公開）。空リストは空で返す。
func (u *VcdUsecase) GetByIDs(ctx context.Context, vcdIDs []string) ([]model.Vcd, error) {
	cleaned := make([]string, 0, len(vcdIDs))
	for _, id := range vcdIDs {
		if s := strings.TrimSpace(id); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return []model.Vcd{}, nil
	}

	vcds, err := u.vcdRepo.FindByVcdIDs(ctx, cleaned)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch VCDs")
	}
	return vcds, nil
}

// vcdIDで1件取得（公開）
func (u *VcdUsecase) GetByID(ctx context.Context, vcdID string) (model.Vcd, error) {
	vcdID = strings.TrimSpace(vcdID)
	if vcdID == "" {
		return model.Vcd{}, NewHTTPError(http.StatusBadRequest, "vcdID is required")
	}

	v, err := u.vcdRepo.FindByVcdID(ctx, vcdID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Vcd{}, NewHTTPError(http.StatusNotFound, "VCD not found")
	}
	if err != nil {
		return model.Vcd{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return v, nil
}

// 画像一覧の出力
type VcdImagesOutput struct {
	VcdID  string   `json:"vcdID"`
	Name   string   `json:"vcdName"`
	Images []string `json:"images"`
}

// vcdIDの画像一覧（要トークン）
func (u *VcdUsecase) Images(ctx context.Context, vcdID string) (VcdImagesOutput, error) {
	vcdID = strings.TrimSpace(vcdID)
	if vcdID == "" {
		return VcdImagesOutput{}, NewHTTPError(http.StatusBadRequest, "vcdID is required in params")
	}

	v, err := u.vcdRepo.FindByVcdID(ctx, vcdID)
	if errors.Is(err, repo.ErrNotFound) {
		return VcdImagesOutput{}, NewHTTPError(http.StatusNotFound, fmt.Sprintf("VCD with id '%s' not found", vcdID))
	}
	if err != nil {
		return VcdImagesOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch images")
	}

	images := v.Images
	if images == nil {
		images = []string{}
	}

	return VcdImagesOutput{VcdID: v.VcdID, Name: v.Name, Images: images}, nil
}

// 管理者による新規追加
func (u *VcdUsecase) AdminCreate(ctx context.Context, actorEmail string, in VcdInput) (model.Vcd, error) {
	if err := validateVcdInput(in); err != nil {
		return model.Vcd{}, err
	}

	created, err := u.vcdRepo.Create(ctx, model.Vcd{
		VcdID:        strings.TrimSpace(in.VcdID),
		Name:         strings.TrimSpace(in.Name),
		Images:       in.Images,
		Summary:      in.Summary,
		Year:         in.Year,
		CastLeads:    in.CastLeads,
		CastFeatured: in.CastFeatured,
		Genre:        in.Genre,
		GenreTags:    in.GenreTags,
		Language:     in.Language,
		Category:     in.Category,
		Rating:       in.Rating,
		Director:     in.Director,
		RuntimeMin:   in.RuntimeMin,
		Quantity:     in.Quantity,
		Cost:         in.Cost,
	})
	if err != nil {
		return model.Vcd{}, NewHTTPError(http.StatusBadRequest, "could not create VCD")
	}

	u.writeAudit(ctx, actorEmail, model.AuditActionCreate, created.VcdID)
	return created, nil
}

// 管理者による名前指定の部分更新（重複名は先頭1件）
func (u *VcdUsecase) AdminUpdateByName(ctx context.Context, actorEmail string, name string, patch repo.VcdPatch) (model.Vcd, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Vcd{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	updated, err := u.vcdRepo.UpdateByName(ctx, name, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Vcd{}, NewHTTPError(http.StatusNotFound, "VCD not found")
	}
	if err != nil {
		return model.Vcd{}, NewHTTPError(http.StatusInternalServerError, "Update failed")
	}

	u.writeAudit(ctx, actorEmail, model.AuditActionUpdate, updated.VcdID)
	return updated, nil
}

// 管理者による名前指定の削除（重複名は先頭1件）
func (u *VcdUsecase) AdminDeleteByName(ctx context.Context, actorEmail string, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}

	err := u.vcdRepo.DeleteByName(ctx, name)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "VCD not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Deletion failed")
	}

	u.writeAudit(ctx, actorEmail, model.AuditActionDelete, name)
	return nil
}

// 在庫減算の入力
type DecreaseInput struct {
	VcdID    string
	Name     string
	Quantity float64
}

// 在庫の条件付き減算。足りなければ404（負数在庫は作らない）。
func (u *VcdUsecase) Decrease(ctx context.Context, in DecreaseInput) (model.Vcd, error) {
	vcdID := strings.TrimSpace(in.VcdID)
	name := strings.TrimSpace(in.Name)

	if vcdID == "" && name == "" {
		return model.Vcd{}, NewHTTPError(http.StatusBadRequest, "vcdName or vcdID and positive quantity are required")
	}
	if !isPositiveInteger(in.Quantity) {
		return model.Vcd{}, NewHTTPError(http.StatusBadRequest, "vcdName or vcdID and positive quantity are required")
	}

	updated, ok, err := u.vcdRepo.DecreaseStockIfEnough(ctx, vcdID, name, int64(in.Quantity))
	if err != nil {
		return model.Vcd{}, NewHTTPError(http.StatusInternalServerError, "Failed to decrease quantity")
	}
	if !ok {
		return model.Vcd{}, NewHTTPError(http.StatusNotFound, "VCD not found or insufficient quantity")
	}
	return updated, nil
}

// 監査は失敗しても操作自体は通す
func (u *VcdUsecase) writeAudit(ctx context.Context, actorEmail string, action model.AuditAction, resourceID string) {
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorEmail: actorEmail,
		Action:     action,
		Resource:   "vcd",
		ResourceID: resourceID,
	})
}

func validateVcdInput(in VcdInput) error {
	if strings.TrimSpace(in.VcdID) == "" || strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "vcdID and vcdName are required")
	}
	if in.Cost < 0 {
		return NewHTTPError(http.StatusBadRequest, "cost must be >= 0")
	}
	if in.Quantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}
	if in.Rating != 0 && (in.Rating < 1 || in.Rating > 5) {
		return NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}
	switch in.Category {
	case "", model.CategoryHollywood, model.CategoryBollywood, model.CategoryRegional:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid category")
	}
	return nil
}
