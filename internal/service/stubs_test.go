package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs shared across the service tests. All of them
// tolerate a nil *gorm.DB, which the services pass when DB() returns nil.

// ── Products ──────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode && p.Active {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Active = false
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Active = true
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func seedProduct(r *stubProductRepo, name string, price float64) *model.Product {
	p := &model.Product{
		ID:           uuid.New(),
		Type:         model.ProductTypePhone,
		Name:         name,
		SKU:          fmt.Sprintf("PH-TST-%08d", len(r.products)+1),
		CategoryID:   uuid.New(),
		BrandID:      uuid.New(),
		CostPrice:    decimal.NewFromFloat(price / 2),
		SellingPrice: decimal.NewFromFloat(price),
		Active:       true,
	}
	r.products[p.ID] = p
	return p
}

// ── Inventory ─────────────────────────────────────────────────────────────────

type invKey struct{ product, branch uuid.UUID }

type stubInventoryRepo struct {
	rows      map[invKey]*model.Inventory
	movements []model.StockMovement
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{rows: make(map[invKey]*model.Inventory)}
}

func (r *stubInventoryRepo) seed(productID, branchID uuid.UUID, qty, reorder int) *model.Inventory {
	inv := &model.Inventory{
		ID:           uuid.New(),
		ProductID:    productID,
		BranchID:     branchID,
		Quantity:     qty,
		ReorderLevel: reorder,
	}
	r.rows[invKey{productID, branchID}] = inv
	return inv
}

func (r *stubInventoryRepo) FindByProductBranch(_ context.Context, productID, branchID uuid.UUID) (*model.Inventory, error) {
	inv, ok := r.rows[invKey{productID, branchID}]
	if !ok {
		return nil, errors.New("not found")
	}
	return inv, nil
}

func (r *stubInventoryRepo) FindOrCreateTx(_ *gorm.DB, productID, branchID uuid.UUID) (*model.Inventory, error) {
	key := invKey{productID, branchID}
	if inv, ok := r.rows[key]; ok {
		return inv, nil
	}
	inv := &model.Inventory{ID: uuid.New(), ProductID: productID, BranchID: branchID, ReorderLevel: 5}
	r.rows[key] = inv
	return inv, nil
}

func (r *stubInventoryRepo) UpdateTx(_ *gorm.DB, inv *model.Inventory) error {
	r.rows[invKey{inv.ProductID, inv.BranchID}] = inv
	return nil
}

func (r *stubInventoryRepo) Update(_ context.Context, inv *model.Inventory) error {
	r.rows[invKey{inv.ProductID, inv.BranchID}] = inv
	return nil
}

func (r *stubInventoryRepo) List(_ context.Context, _ dto.InventoryFilter) ([]model.Inventory, int64, error) {
	out := make([]model.Inventory, 0, len(r.rows))
	for _, inv := range r.rows {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *stubInventoryRepo) CreateMovementTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubInventoryRepo) ListMovements(_ context.Context, _ dto.MovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// ── Catalog: branches, categories, brands ─────────────────────────────────────

type stubBranchRepo struct {
	branches map[uuid.UUID]*model.Branch
}

func newStubBranchRepo() *stubBranchRepo {
	return &stubBranchRepo{branches: make(map[uuid.UUID]*model.Branch)}
}

func (r *stubBranchRepo) seed(managerID *uuid.UUID) *model.Branch {
	b := &model.Branch{
		ID:          uuid.New(),
		Name:        "Main Branch",
		Address:     "12 Market Road",
		PhoneNumber: "0700000000",
		ManagerID:   managerID,
		Active:      true,
	}
	r.branches[b.ID] = b
	return b
}

func (r *stubBranchRepo) Create(_ context.Context, b *model.Branch) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.branches[b.ID] = b
	return nil
}

func (r *stubBranchRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Branch, error) {
	b, ok := r.branches[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (r *stubBranchRepo) List(_ context.Context) ([]model.Branch, error) {
	out := make([]model.Branch, 0, len(r.branches))
	for _, b := range r.branches {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBranchRepo) Update(_ context.Context, b *model.Branch) error {
	r.branches[b.ID] = b
	return nil
}

func (r *stubBranchRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	b, ok := r.branches[id]
	if !ok {
		return errors.New("not found")
	}
	b.Active = false
	return nil
}

var _ repository.BranchRepository = (*stubBranchRepo)(nil)

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			c.ParentID = nil
		}
	}
	delete(r.categories, id)
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

type stubBrandRepo struct {
	brands map[uuid.UUID]*model.Brand
}

func newStubBrandRepo() *stubBrandRepo {
	return &stubBrandRepo{brands: make(map[uuid.UUID]*model.Brand)}
}

func (r *stubBrandRepo) Create(_ context.Context, b *model.Brand) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.brands[b.ID] = b
	return nil
}

func (r *stubBrandRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Brand, error) {
	b, ok := r.brands[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (r *stubBrandRepo) List(_ context.Context) ([]model.Brand, error) {
	out := make([]model.Brand, 0, len(r.brands))
	for _, b := range r.brands {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBrandRepo) Update(_ context.Context, b *model.Brand) error {
	r.brands[b.ID] = b
	return nil
}

func (r *stubBrandRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.brands, id)
	return nil
}

var _ repository.BrandRepository = (*stubBrandRepo)(nil)

// ── Users, suppliers, customers ───────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	// Mirrors the unique index on username
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error)    { return nil, nil }
func (r *stubUserRepo) ListAll(_ context.Context) ([]model.User, error) { return nil, nil }

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Active = true
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) seed(name string) *model.Supplier {
	s := &model.Supplier{ID: uuid.New(), Name: name, PhoneNumber: "0711111111", Active: true}
	r.suppliers[s.ID] = s
	return s
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context, includeInactive bool) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		if s.Active || includeInactive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s, ok := r.suppliers[id]
	if !ok {
		return errors.New("not found")
	}
	s.Active = false
	return nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCustomerRepo) Search(_ context.Context, _ string, _ int) ([]model.Customer, error) {
	return nil, nil
}

func (r *stubCustomerRepo) List(_ context.Context, _, _ int) ([]model.Customer, int64, error) {
	return nil, 0, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// ── Sessions ──────────────────────────────────────────────────────────────────

type stubSessionRepo struct {
	sessions  map[uuid.UUID]*model.POSSession
	drawerOps []model.CashDrawerOperation
	settings  map[uuid.UUID]*model.POSSetting
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{
		sessions: make(map[uuid.UUID]*model.POSSession),
		settings: make(map[uuid.UUID]*model.POSSetting),
	}
}

func (r *stubSessionRepo) seedActive(staffID, branchID uuid.UUID, opening float64) *model.POSSession {
	bal := decimal.NewFromFloat(opening)
	s := &model.POSSession{
		ID:             uuid.New(),
		StaffID:        staffID,
		BranchID:       branchID,
		Status:         model.SessionActive,
		OpeningTime:    time.Now(),
		OpeningBalance: bal,
		CashInDrawer:   bal,
	}
	r.sessions[s.ID] = s
	return s
}

func (r *stubSessionRepo) Create(_ context.Context, s *model.POSSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.POSSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubSessionRepo) FindActiveByStaff(_ context.Context, staffID, branchID uuid.UUID) (*model.POSSession, error) {
	for _, s := range r.sessions {
		if s.StaffID == staffID && s.BranchID == branchID && s.Status == model.SessionActive {
			return s, nil
		}
	}
	return nil, nil
}

func (r *stubSessionRepo) Update(_ context.Context, s *model.POSSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) UpdateTx(_ *gorm.DB, s *model.POSSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) ListActive(_ context.Context, branchID uuid.UUID) ([]model.POSSession, error) {
	var out []model.POSSession
	for _, s := range r.sessions {
		if s.Status != model.SessionActive {
			continue
		}
		if branchID != uuid.Nil && s.BranchID != branchID {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSessionRepo) CreateDrawerOp(_ context.Context, op *model.CashDrawerOperation) error {
	if op.ID == uuid.Nil {
		op.ID = uuid.New()
	}
	op.CreatedAt = time.Now()
	r.drawerOps = append(r.drawerOps, *op)
	return nil
}

func (r *stubSessionRepo) ListDrawerOps(_ context.Context, sessionID uuid.UUID) ([]model.CashDrawerOperation, error) {
	var out []model.CashDrawerOperation
	for _, op := range r.drawerOps {
		if op.SessionID == sessionID {
			out = append(out, op)
		}
	}
	return out, nil
}

func (r *stubSessionRepo) FindSetting(_ context.Context, branchID uuid.UUID) (*model.POSSetting, error) {
	return r.settings[branchID], nil
}

func (r *stubSessionRepo) SaveSetting(_ context.Context, s *model.POSSetting) error {
	r.settings[s.BranchID] = s
	return nil
}

func (r *stubSessionRepo) DB() *gorm.DB { return nil }

var _ repository.SessionRepository = (*stubSessionRepo)(nil)

// ── Sales ─────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales      map[uuid.UUID]*model.Sale
	invoiceSeq map[string]int
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{
		sales:      make(map[uuid.UUID]*model.Sale),
		invoiceSeq: make(map[string]int),
	}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubSaleRepo) Update(_ context.Context, s *model.Sale) error {
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) UpdateTx(_ *gorm.DB, s *model.Sale) error {
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) AddItem(_ context.Context, item *model.SaleItem) error {
	s, ok := r.sales[item.SaleID]
	if !ok {
		return errors.New("sale not found")
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.Items = append(s.Items, *item)
	return nil
}

func (r *stubSaleRepo) UpdateItem(_ context.Context, item *model.SaleItem) error {
	s, ok := r.sales[item.SaleID]
	if !ok {
		return errors.New("sale not found")
	}
	for i := range s.Items {
		if s.Items[i].ID == item.ID {
			s.Items[i] = *item
			return nil
		}
	}
	return errors.New("item not found")
}

func (r *stubSaleRepo) RemoveItem(_ context.Context, itemID uuid.UUID) error {
	for _, s := range r.sales {
		for i := range s.Items {
			if s.Items[i].ID == itemID {
				s.Items = append(s.Items[:i], s.Items[i+1:]...)
				return nil
			}
		}
	}
	return errors.New("item not found")
}

func (r *stubSaleRepo) FindItem(_ context.Context, itemID uuid.UUID) (*model.SaleItem, error) {
	for _, s := range r.sales {
		for i := range s.Items {
			if s.Items[i].ID == itemID {
				item := s.Items[i]
				return &item, nil
			}
		}
	}
	return nil, errors.New("not found")
}

func (r *stubSaleRepo) NextInvoiceSeq(_ context.Context, _ *gorm.DB, day string) (int, error) {
	r.invoiceSeq[day]++
	return r.invoiceSeq[day], nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Purchases ─────────────────────────────────────────────────────────────────

type stubPurchaseRepo struct {
	mu        sync.Mutex
	purchases map[uuid.UUID]*model.Purchase
	refSeq    int64
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[uuid.UUID]*model.Purchase)}
}

func (r *stubPurchaseRepo) Create(_ context.Context, _ *gorm.DB, p *model.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Items {
		if p.Items[i].ID == uuid.Nil {
			p.Items[i].ID = uuid.New()
		}
		p.Items[i].PurchaseID = p.ID
	}
	r.purchases[p.ID] = p
	return nil
}

// FindByID hands back a snapshot, the way a fresh SELECT would.
func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	cp.Items = append([]model.PurchaseItem(nil), p.Items...)
	return &cp, nil
}

func (r *stubPurchaseRepo) Update(_ context.Context, p *model.Purchase) error {
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) UpdateTx(_ *gorm.DB, p *model.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purchases[p.ID] = p
	return nil
}

// ClaimReceivedTx mirrors the guarded UPDATE: only a pending purchase flips,
// atomically with respect to concurrent claims.
func (r *stubPurchaseRepo) ClaimReceivedTx(_ *gorm.DB, id, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return false, errors.New("not found")
	}
	if p.Status != model.PurchasePending {
		return false, nil
	}
	p.Status = model.PurchaseReceived
	p.ReceivedByID = &userID
	return true, nil
}

func (r *stubPurchaseRepo) AddItem(_ context.Context, item *model.PurchaseItem) error {
	p, ok := r.purchases[item.PurchaseID]
	if !ok {
		return errors.New("purchase not found")
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	p.Items = append(p.Items, *item)
	return nil
}

func (r *stubPurchaseRepo) RemoveItem(_ context.Context, itemID uuid.UUID) error {
	for _, p := range r.purchases {
		for i := range p.Items {
			if p.Items[i].ID == itemID {
				p.Items = append(p.Items[:i], p.Items[i+1:]...)
				return nil
			}
		}
	}
	return errors.New("item not found")
}

func (r *stubPurchaseRepo) NextReferenceSeq(_ context.Context, _ *gorm.DB) (int64, error) {
	r.refSeq++
	return r.refSeq, nil
}

func (r *stubPurchaseRepo) List(_ context.Context, _ dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	out := make([]model.Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// ── Cart ──────────────────────────────────────────────────────────────────────

type stubCartRepo struct {
	items []*model.CartItem
}

func (r *stubCartRepo) AddItem(_ context.Context, item *model.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.AddedAt = time.Now()
	r.items = append(r.items, item)
	return nil
}

func (r *stubCartRepo) FindItem(_ context.Context, itemID uuid.UUID) (*model.CartItem, error) {
	for _, item := range r.items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubCartRepo) FindBySessionProduct(_ context.Context, sessionID, productID uuid.UUID) (*model.CartItem, error) {
	for _, item := range r.items {
		if item.SessionID == sessionID && item.ProductID == productID {
			return item, nil
		}
	}
	return nil, nil
}

func (r *stubCartRepo) UpdateItem(_ context.Context, item *model.CartItem) error {
	for i, existing := range r.items {
		if existing.ID == item.ID {
			r.items[i] = item
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubCartRepo) RemoveItem(_ context.Context, itemID uuid.UUID) error {
	for i, item := range r.items {
		if item.ID == itemID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubCartRepo) ListBySession(_ context.Context, sessionID uuid.UUID) ([]model.CartItem, error) {
	var out []model.CartItem
	for _, item := range r.items {
		if item.SessionID == sessionID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubCartRepo) ClearSession(_ context.Context, _ *gorm.DB, sessionID uuid.UUID) error {
	kept := r.items[:0]
	for _, item := range r.items {
		if item.SessionID != sessionID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

func (r *stubCartRepo) DB() *gorm.DB { return nil }

var _ repository.CartRepository = (*stubCartRepo)(nil)

// ── Notifier ──────────────────────────────────────────────────────────────────

// stubNotifier records the alerts the services fire after committing.
type stubNotifier struct {
	lowStock  []*model.Inventory
	purchases []*model.Purchase
}

func (n *stubNotifier) NotifyLowStock(_ context.Context, inv *model.Inventory) error {
	n.lowStock = append(n.lowStock, inv)
	return nil
}

func (n *stubNotifier) NotifyPurchaseReceived(_ context.Context, p *model.Purchase) error {
	n.purchases = append(n.purchases, p)
	return nil
}

func (n *stubNotifier) GetNotification(_ context.Context, _ uuid.UUID) (*dto.NotificationResponse, error) {
	return nil, errors.New("not found")
}

func (n *stubNotifier) ListNotifications(_ context.Context, _ uuid.UUID, _ dto.NotificationFilter) (*dto.NotificationListResponse, error) {
	return &dto.NotificationListResponse{}, nil
}

var _ service.NotificationService = (*stubNotifier)(nil)
