package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseService interface {
	CreatePurchase(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	GetPurchase(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	ListPurchases(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error)
	AddItem(ctx context.Context, purchaseID uuid.UUID, req dto.PurchaseItemRequest) (*dto.PurchaseResponse, error)
	RemoveItem(ctx context.Context, purchaseID, itemID uuid.UUID) (*dto.PurchaseResponse, error)
	// ReceivePurchase credits branch inventory exactly once. A second receive
	// call is rejected by the status guard.
	ReceivePurchase(ctx context.Context, purchaseID, userID uuid.UUID) (*dto.PurchaseResponse, error)
	CancelPurchase(ctx context.Context, purchaseID uuid.UUID) error
}

type purchaseService struct {
	repo      repository.PurchaseRepository
	suppliers repository.SupplierRepository
	branches  repository.BranchRepository
	products  repository.ProductRepository
	inventory InventoryService
	notifier  NotificationService
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	suppliers repository.SupplierRepository,
	branches repository.BranchRepository,
	products repository.ProductRepository,
	inventory InventoryService,
	notifier NotificationService,
) PurchaseService {
	return &purchaseService{
		repo:      repo,
		suppliers: suppliers,
		branches:  branches,
		products:  products,
		inventory: inventory,
		notifier:  notifier,
	}
}

// ── CreatePurchase ────────────────────────────────────────────────────────────

func (s *purchaseService) CreatePurchase(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, errors.New("invalid supplier_id")
	}
	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, errors.New("supplier not found")
	}
	if !supplier.Active {
		return nil, errors.New("supplier is inactive")
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, errors.New("invalid branch_id")
	}
	if _, err := s.branches.FindByID(ctx, branchID); err != nil {
		return nil, errors.New("branch not found")
	}

	// Resolve items before opening the transaction
	items := make([]model.PurchaseItem, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, errors.New("invalid product_id")
		}
		if _, err := s.products.FindByID(ctx, productID); err != nil {
			return nil, fmt.Errorf("product %s not found", item.ProductID)
		}
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, model.PurchaseItem{
			ProductID:  productID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: lineTotal,
		})
	}

	var purchase model.Purchase
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		seq, err := s.repo.NextReferenceSeq(ctx, tx)
		if err != nil {
			return err
		}
		purchase = model.Purchase{
			SupplierID:      supplierID,
			BranchID:        branchID,
			ReferenceNumber: fmt.Sprintf("PO-%06d", seq),
			PurchaseDate:    time.Now(),
			Status:          model.PurchasePending,
			Notes:           req.Notes,
			CreatedByID:     &userID,
			TotalAmount:     total,
			Items:           items,
		}
		return s.repo.Create(ctx, tx, &purchase)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetPurchase(ctx, purchase.ID)
}

func (s *purchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("purchase not found")
	}
	return purchaseToResponse(p), nil
}

func (s *purchaseService) ListPurchases(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	purchases, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		items = append(items, *purchaseToResponse(&purchases[i]))
	}
	return &dto.PurchaseListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Item edits (pending only) ─────────────────────────────────────────────────

func (s *purchaseService) AddItem(ctx context.Context, purchaseID uuid.UUID, req dto.PurchaseItemRequest) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, errors.New("purchase not found")
	}
	if p.Status != model.PurchasePending {
		return nil, fmt.Errorf("purchase is %s and can no longer be edited", p.Status)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, errors.New("invalid product_id")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, errors.New("product not found")
	}

	item := &model.PurchaseItem{
		PurchaseID: purchaseID,
		ProductID:  productID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		TotalPrice: req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
	}
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return s.recomputeTotal(ctx, purchaseID)
}

func (s *purchaseService) RemoveItem(ctx context.Context, purchaseID, itemID uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, errors.New("purchase not found")
	}
	if p.Status != model.PurchasePending {
		return nil, fmt.Errorf("purchase is %s and can no longer be edited", p.Status)
	}
	found := false
	for _, item := range p.Items {
		if item.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return nil, errors.New("item not found on this purchase")
	}
	if err := s.repo.RemoveItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.recomputeTotal(ctx, purchaseID)
}

func (s *purchaseService) recomputeTotal(ctx context.Context, purchaseID uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.TotalPrice)
	}
	p.TotalAmount = total
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return purchaseToResponse(p), nil
}

// ── ReceivePurchase ───────────────────────────────────────────────────────────
// Single transaction:
//  1. Claim the purchase: UPDATE ... SET status = received WHERE status =
//     pending, checking rows affected
//  2. Credit inventory per item with a purchase_receipt ledger entry
// The guarded UPDATE makes the credit exactly-once: of any number of
// concurrent or repeated receives, only the one that flips the row credits
// stock; the rest see zero rows affected and fail without touching it.

func (s *purchaseService) ReceivePurchase(ctx context.Context, purchaseID, userID uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, errors.New("purchase not found")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		claimed, err := s.repo.ClaimReceivedTx(tx, purchaseID, userID)
		if err != nil {
			return err
		}
		if !claimed {
			cur, ferr := s.repo.FindByID(ctx, purchaseID)
			if ferr != nil {
				return errors.New("purchase not found")
			}
			return fmt.Errorf("purchase is %s and cannot be received", cur.Status)
		}
		p.Status = model.PurchaseReceived
		p.ReceivedByID = &userID

		for _, item := range p.Items {
			ref := p.ID
			_, _, err := s.inventory.AdjustStockTx(ctx, tx, item.ProductID, p.BranchID, item.Quantity,
				model.MovementPurchaseReceipt,
				fmt.Sprintf("Receipt of %s", p.ReferenceNumber), &ref)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyPurchaseReceived(ctx, p)
	}
	return s.GetPurchase(ctx, purchaseID)
}

func (s *purchaseService) CancelPurchase(ctx context.Context, purchaseID uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		return errors.New("purchase not found")
	}
	if p.Status != model.PurchasePending {
		return fmt.Errorf("purchase is %s and cannot be canceled", p.Status)
	}
	p.Status = model.PurchaseCanceled
	return s.repo.Update(ctx, p)
}

func purchaseToResponse(p *model.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.PurchaseItemResponse{
			ID:         item.ID.String(),
			ProductID:  item.ProductID.String(),
			Product:    name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}
	resp := &dto.PurchaseResponse{
		ID:              p.ID.String(),
		ReferenceNumber: p.ReferenceNumber,
		SupplierID:      p.SupplierID.String(),
		BranchID:        p.BranchID.String(),
		Status:          p.Status,
		Notes:           p.Notes,
		TotalAmount:     p.TotalAmount,
		Items:           items,
		PurchaseDate:    p.PurchaseDate.Format("2006-01-02T15:04:05Z"),
	}
	if p.Supplier != nil {
		resp.Supplier = p.Supplier.Name
	}
	return resp
}
