package service

import (
	"context"
	"errors"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"

	"github.com/google/uuid"
)

// CatalogService covers categories, brands and branches.
type CatalogService interface {
	CreateCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateBrand(ctx context.Context, req dto.BrandRequest) (*dto.BrandResponse, error)
	ListBrands(ctx context.Context) ([]dto.BrandResponse, error)
	UpdateBrand(ctx context.Context, id uuid.UUID, req dto.BrandRequest) (*dto.BrandResponse, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error

	CreateBranch(ctx context.Context, req dto.BranchRequest) (*dto.BranchResponse, error)
	ListBranches(ctx context.Context) ([]dto.BranchResponse, error)
	UpdateBranch(ctx context.Context, id uuid.UUID, req dto.BranchRequest) (*dto.BranchResponse, error)
	DeactivateBranch(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	branches   repository.BranchRepository
	users      repository.UserRepository
}

func NewCatalogService(
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	branches repository.BranchRepository,
	users repository.UserRepository,
) CatalogService {
	return &catalogService{categories: categories, brands: brands, branches: branches, users: users}
}

// ── Categories ────────────────────────────────────────────────────────────────

func (s *catalogService) CreateCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		return nil, errors.New("invalid parent_id")
	}
	if parentID != nil {
		if _, err := s.categories.FindByID(ctx, *parentID); err != nil {
			return nil, errors.New("parent category not found")
		}
	}
	c := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    parentID,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return categoryToResponse(c), nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, len(cats))
	for i := range cats {
		resp[i] = *categoryToResponse(&cats[i])
	}
	return resp, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("category not found")
	}
	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		return nil, errors.New("invalid parent_id")
	}
	if parentID != nil {
		if *parentID == id {
			return nil, errors.New("a category cannot be its own parent")
		}
		// Walk the ancestor chain to keep the tree acyclic
		if err := s.checkNoCycle(ctx, id, *parentID); err != nil {
			return nil, err
		}
	}
	c.Name = req.Name
	c.Description = req.Description
	c.ParentID = parentID
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return categoryToResponse(c), nil
}

// checkNoCycle rejects the reparenting when categoryID appears in the
// ancestor chain of newParentID.
func (s *catalogService) checkNoCycle(ctx context.Context, categoryID, newParentID uuid.UUID) error {
	const maxDepth = 50
	current := newParentID
	for i := 0; i < maxDepth; i++ {
		node, err := s.categories.FindByID(ctx, current)
		if err != nil {
			return errors.New("parent category not found")
		}
		if node.ID == categoryID {
			return errors.New("reparenting would create a category cycle")
		}
		if node.ParentID == nil {
			return nil
		}
		current = *node.ParentID
	}
	return errors.New("category tree too deep")
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return errors.New("category not found")
	}
	// Children are reparented to root (parent_id nulled) inside the repo tx
	return s.categories.Delete(ctx, id)
}

// ── Brands ────────────────────────────────────────────────────────────────────

func (s *catalogService) CreateBrand(ctx context.Context, req dto.BrandRequest) (*dto.BrandResponse, error) {
	b := &model.Brand{
		Name:        req.Name,
		Description: req.Description,
		LogoPath:    req.LogoPath,
		Website:     req.Website,
	}
	if err := s.brands.Create(ctx, b); err != nil {
		return nil, err
	}
	return brandToResponse(b), nil
}

func (s *catalogService) ListBrands(ctx context.Context) ([]dto.BrandResponse, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BrandResponse, len(brands))
	for i := range brands {
		resp[i] = *brandToResponse(&brands[i])
	}
	return resp, nil
}

func (s *catalogService) UpdateBrand(ctx context.Context, id uuid.UUID, req dto.BrandRequest) (*dto.BrandResponse, error) {
	b, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("brand not found")
	}
	b.Name = req.Name
	b.Description = req.Description
	b.LogoPath = req.LogoPath
	b.Website = req.Website
	if err := s.brands.Update(ctx, b); err != nil {
		return nil, err
	}
	return brandToResponse(b), nil
}

func (s *catalogService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brands.FindByID(ctx, id); err != nil {
		return errors.New("brand not found")
	}
	return s.brands.Delete(ctx, id)
}

// ── Branches ──────────────────────────────────────────────────────────────────

func (s *catalogService) CreateBranch(ctx context.Context, req dto.BranchRequest) (*dto.BranchResponse, error) {
	managerID, err := parseOptionalUUID(req.ManagerID)
	if err != nil {
		return nil, errors.New("invalid manager_id")
	}
	if managerID != nil {
		if _, err := s.users.FindByID(ctx, *managerID); err != nil {
			return nil, errors.New("manager not found")
		}
	}
	b := &model.Branch{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		ManagerID:   managerID,
		Active:      true,
	}
	if err := s.branches.Create(ctx, b); err != nil {
		return nil, err
	}
	return branchToResponse(b), nil
}

func (s *catalogService) ListBranches(ctx context.Context) ([]dto.BranchResponse, error) {
	branches, err := s.branches.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BranchResponse, len(branches))
	for i := range branches {
		resp[i] = *branchToResponse(&branches[i])
	}
	return resp, nil
}

func (s *catalogService) UpdateBranch(ctx context.Context, id uuid.UUID, req dto.BranchRequest) (*dto.BranchResponse, error) {
	b, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("branch not found")
	}
	managerID, err := parseOptionalUUID(req.ManagerID)
	if err != nil {
		return nil, errors.New("invalid manager_id")
	}
	if managerID != nil {
		if _, err := s.users.FindByID(ctx, *managerID); err != nil {
			return nil, errors.New("manager not found")
		}
	}
	b.Name = req.Name
	b.Address = req.Address
	b.PhoneNumber = req.PhoneNumber
	b.Email = req.Email
	b.ManagerID = managerID
	if err := s.branches.Update(ctx, b); err != nil {
		return nil, err
	}
	return branchToResponse(b), nil
}

func (s *catalogService) DeactivateBranch(ctx context.Context, id uuid.UUID) error {
	if _, err := s.branches.FindByID(ctx, id); err != nil {
		return errors.New("branch not found")
	}
	return s.branches.SoftDelete(ctx, id)
}

// ── Mapping helpers ───────────────────────────────────────────────────────────

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	var parentID *string
	if c.ParentID != nil {
		v := c.ParentID.String()
		parentID = &v
	}
	return &dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		ParentID:    parentID,
	}
}

func brandToResponse(b *model.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Description: b.Description,
		LogoPath:    b.LogoPath,
		Website:     b.Website,
	}
}

func branchToResponse(b *model.Branch) *dto.BranchResponse {
	var managerID *string
	if b.ManagerID != nil {
		v := b.ManagerID.String()
		managerID = &v
	}
	return &dto.BranchResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Address:     b.Address,
		PhoneNumber: b.PhoneNumber,
		Email:       b.Email,
		ManagerID:   managerID,
		Active:      b.Active,
	}
}
