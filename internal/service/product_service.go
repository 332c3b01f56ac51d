package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"

	"github.com/google/uuid"
)

type ProductService interface {
	CreatePhone(ctx context.Context, req dto.CreatePhoneRequest) (*dto.ProductResponse, error)
	CreateAccessory(ctx context.Context, req dto.CreateAccessoryRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	// LookupProduct resolves a SKU or barcode, for the POS scan box.
	LookupProduct(ctx context.Context, code string) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID) error
	ReactivateProduct(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
}

func NewProductService(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
) ProductService {
	return &productService{repo: repo, categories: categories, brands: brands}
}

func (s *productService) CreatePhone(ctx context.Context, req dto.CreatePhoneRequest) (*dto.ProductResponse, error) {
	p, err := s.buildBase(ctx, model.ProductTypePhone, req.ProductBase)
	if err != nil {
		return nil, err
	}
	p.Phone = &model.PhoneSpec{
		ModelNumber:     req.ModelNumber,
		StorageCapacity: req.StorageCapacity,
		RAM:             req.RAM,
		Color:           req.Color,
		ScreenSize:      req.ScreenSize,
		Processor:       req.Processor,
		CameraSpecs:     req.CameraSpecs,
		BatteryCapacity: req.BatteryCapacity,
		OperatingSystem: req.OperatingSystem,
		ReleaseYear:     req.ReleaseYear,
		WarrantyPeriod:  req.WarrantyPeriod,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, p.ID)
}

func (s *productService) CreateAccessory(ctx context.Context, req dto.CreateAccessoryRequest) (*dto.ProductResponse, error) {
	p, err := s.buildBase(ctx, model.ProductTypeAccessory, req.ProductBase)
	if err != nil {
		return nil, err
	}
	p.Accessory = &model.AccessorySpec{
		AccessoryType:  req.AccessoryType,
		Material:       req.Material,
		Color:          req.Color,
		Specifications: req.Specifications,
		WarrantyPeriod: req.WarrantyPeriod,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, p.ID)
}

// buildBase validates the shared fields and resolves the SKU.
func (s *productService) buildBase(ctx context.Context, productType string, base dto.ProductBase) (*model.Product, error) {
	categoryID, err := uuid.Parse(base.CategoryID)
	if err != nil {
		return nil, errors.New("invalid category_id")
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, errors.New("category not found")
	}
	brandID, err := uuid.Parse(base.BrandID)
	if err != nil {
		return nil, errors.New("invalid brand_id")
	}
	brand, err := s.brands.FindByID(ctx, brandID)
	if err != nil {
		return nil, errors.New("brand not found")
	}
	if base.SellingPrice.LessThan(base.CostPrice) {
		return nil, errors.New("selling price must not be below cost price")
	}

	sku := base.SKU
	if sku == "" {
		sku = generateSKU(productType, brand.Name)
	} else if existing, err := s.repo.FindBySKU(ctx, sku); err == nil && existing != nil {
		return nil, fmt.Errorf("SKU %s already in use", sku)
	}

	return &model.Product{
		Type:         productType,
		Name:         base.Name,
		SKU:          sku,
		Barcode:      base.Barcode,
		Description:  base.Description,
		CategoryID:   categoryID,
		BrandID:      brandID,
		CostPrice:    base.CostPrice,
		SellingPrice: base.SellingPrice,
		ImagePath:    base.ImagePath,
		Active:       true,
	}, nil
}

// generateSKU builds "{PH|AC}-{BRAND_INITIALS}-{token}" where token is the
// first 8 hex chars of a random UUID. Uniqueness is backed by the DB index.
func generateSKU(productType, brandName string) string {
	prefix := "AC"
	if productType == model.ProductTypePhone {
		prefix = "PH"
	}

	initials := make([]rune, 0, 3)
	for _, word := range strings.Fields(brandName) {
		for _, r := range word {
			initials = append(initials, r)
			break
		}
		if len(initials) == 3 {
			break
		}
	}
	if len(initials) == 0 {
		initials = []rune{'X'}
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", prefix, strings.ToUpper(string(initials)), strings.ToUpper(token))
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	return productToResponse(p), nil
}

func (s *productService) LookupProduct(ctx context.Context, code string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindBySKU(ctx, code)
	if err != nil {
		p, err = s.repo.FindByBarcode(ctx, code)
	}
	if err != nil {
		return nil, errors.New("product not found")
	}
	return productToResponse(p), nil
}

func (s *productService) ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Barcode != nil {
		p.Barcode = req.Barcode
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category_id")
		}
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			return nil, errors.New("category not found")
		}
		p.CategoryID = categoryID
	}
	if req.BrandID != nil {
		brandID, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return nil, errors.New("invalid brand_id")
		}
		if _, err := s.brands.FindByID(ctx, brandID); err != nil {
			return nil, errors.New("brand not found")
		}
		p.BrandID = brandID
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
	}
	if req.ImagePath != nil {
		p.ImagePath = req.ImagePath
	}
	if p.SellingPrice.LessThan(p.CostPrice) {
		return nil, errors.New("selling price must not be below cost price")
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *productService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("product not found")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productService) ReactivateProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("product not found")
	}
	return s.repo.Reactivate(ctx, id)
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:           p.ID.String(),
		Type:         p.Type,
		Name:         p.Name,
		SKU:          p.SKU,
		Barcode:      p.Barcode,
		Description:  p.Description,
		CategoryID:   p.CategoryID.String(),
		BrandID:      p.BrandID.String(),
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		ImagePath:    p.ImagePath,
		Active:       p.Active,
	}
	if p.Category != nil {
		resp.Category = p.Category.Name
	}
	if p.Brand != nil {
		resp.Brand = p.Brand.Name
	}
	if p.Phone != nil {
		resp.Phone = &dto.PhoneSpecResponse{
			ModelNumber:     p.Phone.ModelNumber,
			StorageCapacity: p.Phone.StorageCapacity,
			RAM:             p.Phone.RAM,
			Color:           p.Phone.Color,
			ScreenSize:      p.Phone.ScreenSize,
			Processor:       p.Phone.Processor,
			OperatingSystem: p.Phone.OperatingSystem,
			CameraSpecs:     p.Phone.CameraSpecs,
			BatteryCapacity: p.Phone.BatteryCapacity,
			ReleaseYear:     p.Phone.ReleaseYear,
			WarrantyPeriod:  p.Phone.WarrantyPeriod,
		}
	}
	if p.Accessory != nil {
		resp.Accessory = &dto.AccessorySpecResponse{
			AccessoryType:  p.Accessory.AccessoryType,
			Material:       p.Accessory.Material,
			Color:          p.Accessory.Color,
			Specifications: p.Accessory.Specifications,
			WarrantyPeriod: p.Accessory.WarrantyPeriod,
		}
	}
	return resp
}
