package branches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dealerdesk/dealerdesk-backend/pkg/db/models"
	pkgerrors "github.com/dealerdesk/dealerdesk-backend/pkg/errors"
)

// Repository defines persistence operations for the branches table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, branch *models.Branch) (*models.Branch, error)
	FindByID(ctx context.Context, id int64) (*models.Branch, error)
	ListAll(ctx context.Context) ([]models.Branch, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// CreateInput carries the fields accepted when opening a branch.
type CreateInput struct {
	Name    string
	Address *string
	City    *string
	State   *string
	Zip     *string
	Phone   *string
	Manager *string
}

// UpdateInput carries the patchable branch fields. Nil means "leave as is".
type UpdateInput struct {
	Name     *string
	Address  *string
	City     *string
	State    *string
	Zip      *string
	Phone    *string
	Manager  *string
	IsActive *bool
}

// Service exposes operations on dealership branches.
type Service interface {
	List(ctx context.Context) ([]models.Branch, error)
	Get(ctx context.Context, id int64) (*models.Branch, error)
	Create(ctx context.Context, input CreateInput) (*models.Branch, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Branch, error)
	Delete(ctx context.Context, id int64) (*models.Branch, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a branches repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, branch *models.Branch) (*models.Branch, error) {
	if err := r.db.WithContext(ctx).Create(branch).Error; err != nil {
		return nil, err
	}
	return branch, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.Branch, error) {
	var records []models.Branch
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Branch{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Branch{}).Error
}

type service struct {
	repo Repository
}

// NewService builds a branches service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("branches repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Branch, error) {
	branches, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list branches")
	}
	return branches, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Branch, error) {
	branch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load branch")
	}
	return branch, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Branch, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch name required")
	}

	branch := &models.Branch{
		Name:     strings.TrimSpace(input.Name),
		Address:  input.Address,
		City:     input.City,
		State:    input.State,
		Zip:      input.Zip,
		Phone:    input.Phone,
		Manager:  input.Manager,
		IsActive: true,
	}

	created, err := s.repo.Create(ctx, branch)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create branch")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Branch, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch name required")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.City != nil {
		updates["city"] = *input.City
	}
	if input.State != nil {
		updates["state"] = *input.State
	}
	if input.Zip != nil {
		updates["zip"] = *input.Zip
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Manager != nil {
		updates["manager"] = *input.Manager
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update branch")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) (*models.Branch, error) {
	branch, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete branch")
	}
	return branch, nil
}
