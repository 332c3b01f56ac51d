package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService interface {
	AddItem(ctx context.Context, req dto.AddCartItemRequest) (*dto.CartResponse, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, req dto.UpdateCartItemRequest) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) (*dto.CartResponse, error)
	GetCart(ctx context.Context, sessionID uuid.UUID) (*dto.CartResponse, error)
	// ApplyTax recomputes every line's tax. A nil rate in the request falls
	// back to the branch POS settings (10% when no settings row exists).
	ApplyTax(ctx context.Context, req dto.ApplyTaxRequest) (*dto.CartResponse, error)
	ClearCart(ctx context.Context, sessionID uuid.UUID) error
	// Checkout converts the cart into a draft sale and empties the cart.
	Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.SaleResponse, error)
}

type cartService struct {
	repo     repository.CartRepository
	sessions SessionService
	settings repository.SessionRepository
	products repository.ProductRepository
	sales    SaleService
}

func NewCartService(
	repo repository.CartRepository,
	sessions SessionService,
	settings repository.SessionRepository,
	products repository.ProductRepository,
	sales SaleService,
) CartService {
	return &cartService{
		repo:     repo,
		sessions: sessions,
		settings: settings,
		products: products,
		sales:    sales,
	}
}

func (s *cartService) AddItem(ctx context.Context, req dto.AddCartItemRequest) (*dto.CartResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, errors.New("invalid session_id")
	}
	if _, err := s.sessions.GetActiveSession(ctx, sessionID); err != nil {
		return nil, err
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, errors.New("invalid product_id")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if !product.Active {
		return nil, errors.New("product is inactive")
	}

	// Adding the same product twice merges into one line
	existing, err := s.repo.FindBySessionProduct(ctx, sessionID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += req.Quantity
		existing.Discount = existing.Discount.Add(req.Discount)
		existing.Recalculate()
		if err := s.repo.UpdateItem(ctx, existing); err != nil {
			return nil, err
		}
		return s.GetCart(ctx, sessionID)
	}

	item := &model.CartItem{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  req.Quantity,
		UnitPrice: product.SellingPrice,
		Discount:  req.Discount,
		Notes:     req.Notes,
	}
	item.Recalculate()
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, sessionID)
}

func (s *cartService) UpdateItem(ctx context.Context, itemID uuid.UUID, req dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		return nil, errors.New("cart item not found")
	}
	item.Quantity = req.Quantity
	item.Discount = req.Discount
	item.Recalculate()
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, item.SessionID)
}

func (s *cartService) RemoveItem(ctx context.Context, itemID uuid.UUID) (*dto.CartResponse, error) {
	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		return nil, errors.New("cart item not found")
	}
	if err := s.repo.RemoveItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, item.SessionID)
}

func (s *cartService) GetCart(ctx context.Context, sessionID uuid.UUID) (*dto.CartResponse, error) {
	items, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CartResponse{
		SessionID: sessionID.String(),
		Items:     make([]dto.CartItemResponse, 0, len(items)),
		Subtotal:  decimal.Zero,
		TaxTotal:  decimal.Zero,
		Total:     decimal.Zero,
	}
	for i := range items {
		item := &items[i]
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		resp.Items = append(resp.Items, dto.CartItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Product:   name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			TaxAmount: item.TaxAmount,
			Total:     item.Total,
			Notes:     item.Notes,
		})
		resp.Subtotal = resp.Subtotal.Add(item.SubtotalBeforeTax())
		resp.TaxTotal = resp.TaxTotal.Add(item.TaxAmount)
		resp.Total = resp.Total.Add(item.Total)
	}
	return resp, nil
}

func (s *cartService) ApplyTax(ctx context.Context, req dto.ApplyTaxRequest) (*dto.CartResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, errors.New("invalid session_id")
	}
	session, err := s.sessions.GetActiveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rate, err := s.taxRate(ctx, session.BranchID, req.TaxRate)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	hundred := decimal.NewFromInt(100)
	for i := range items {
		item := &items[i]
		item.TaxAmount = item.SubtotalBeforeTax().Mul(rate).Div(hundred)
		item.Recalculate()
		if err := s.repo.UpdateItem(ctx, item); err != nil {
			return nil, err
		}
	}
	return s.GetCart(ctx, sessionID)
}

// taxRate resolves the effective rate: explicit request value, then the
// branch POS settings, then the 10% default.
func (s *cartService) taxRate(ctx context.Context, branchID uuid.UUID, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		if override.IsNegative() || override.GreaterThan(decimal.NewFromInt(100)) {
			return decimal.Zero, errors.New("tax_rate must be between 0 and 100")
		}
		return *override, nil
	}
	setting, err := s.settings.FindSetting(ctx, branchID)
	if err != nil {
		return decimal.Zero, err
	}
	if setting == nil {
		return decimal.NewFromInt(10), nil
	}
	return setting.TaxRate, nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.ClearSession(ctx, tx, sessionID)
	})
}

// ── Checkout ──────────────────────────────────────────────────────────────────

func (s *cartService) Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.SaleResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, errors.New("invalid session_id")
	}
	session, err := s.sessions.GetActiveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("cart is empty")
	}

	sale, err := s.sales.StartSale(ctx, session.StaffID, dto.StartSaleRequest{
		SessionID:     req.SessionID,
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}
	saleID, err := uuid.Parse(sale.ID)
	if err != nil {
		return nil, err
	}

	taxTotal := decimal.Zero
	for i := range items {
		item := &items[i]
		price := item.UnitPrice
		sale, err = s.sales.AddItem(ctx, saleID, dto.SaleItemRequest{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Discount:  item.Discount,
			UnitPrice: &price,
		})
		if err != nil {
			return nil, fmt.Errorf("checkout failed on product %s: %w", item.ProductID, err)
		}
		taxTotal = taxTotal.Add(item.TaxAmount)
	}
	if taxTotal.IsPositive() {
		sale, err = s.sales.UpdateSale(ctx, saleID, dto.UpdateSaleRequest{TaxAmount: &taxTotal})
		if err != nil {
			return nil, err
		}
	}

	if err := s.ClearCart(ctx, sessionID); err != nil {
		return nil, err
	}
	return sale, nil
}
