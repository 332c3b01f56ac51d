package service_test

import (
	"context"
	"testing"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartFixture struct {
	svc         service.CartService
	repo        *stubCartRepo
	saleRepo    *stubSaleRepo
	sessionRepo *stubSessionRepo
	invRepo     *stubInventoryRepo
	products    *stubProductRepo
	session     *model.POSSession
	branchID    uuid.UUID
}

func newCartFixture() *cartFixture {
	cartRepo := &stubCartRepo{}
	saleRepo := newStubSaleRepo()
	sessionRepo := newStubSessionRepo()
	branchRepo := newStubBranchRepo()
	productRepo := newStubProductRepo()
	invRepo := newStubInventoryRepo()
	customerRepo := newStubCustomerRepo()
	notifier := &stubNotifier{}

	branch := branchRepo.seed(nil)
	session := sessionRepo.seedActive(uuid.New(), branch.ID, 100)

	sessionSvc := service.NewSessionService(sessionRepo, branchRepo)
	inventorySvc := service.NewInventoryService(invRepo, notifier)
	saleSvc := service.NewSaleService(saleRepo, sessionSvc, customerRepo, productRepo, inventorySvc, notifier, "Test Store", "")
	svc := service.NewCartService(cartRepo, sessionSvc, sessionRepo, productRepo, saleSvc)

	return &cartFixture{
		svc:         svc,
		repo:        cartRepo,
		saleRepo:    saleRepo,
		sessionRepo: sessionRepo,
		invRepo:     invRepo,
		products:    productRepo,
		session:     session,
		branchID:    branch.ID,
	}
}

func TestAddCartItem_MergesSameProduct(t *testing.T) {
	f := newCartFixture()
	p := seedProduct(f.products, "Charger 20W", 20)

	cart, err := f.svc.AddItem(context.Background(), dto.AddCartItemRequest{
		SessionID: f.session.ID.String(),
		ProductID: p.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "40", cart.Subtotal.String())

	// Same product again: one line, summed quantity
	cart, err = f.svc.AddItem(context.Background(), dto.AddCartItemRequest{
		SessionID: f.session.ID.String(),
		ProductID: p.ID.String(),
		Quantity:  3,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, "100", cart.Subtotal.String())
}

func TestAddCartItem_InactiveProductRejected(t *testing.T) {
	f := newCartFixture()
	p := seedProduct(f.products, "Discontinued Model", 80)
	p.Active = false

	_, err := f.svc.AddItem(context.Background(), dto.AddCartItemRequest{
		SessionID: f.session.ID.String(),
		ProductID: p.ID.String(),
		Quantity:  1,
	})
	assert.ErrorContains(t, err, "inactive")
}

func TestApplyTax_ExplicitRate(t *testing.T) {
	f := newCartFixture()
	p := seedProduct(f.products, "Earbuds", 50)

	_, err := f.svc.AddItem(context.Background(), dto.AddCartItemRequest{
		SessionID: f.session.ID.String(),
		ProductID: p.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	rate := decimal.NewFromInt(5)
	cart, err := f.svc.ApplyTax(context.Background(), dto.ApplyTaxRequest{
		SessionID: f.session.ID.String(),
		TaxRate:   &rate,
	})
	require.NoError(t, err)
	assert.Equal(t, "5", cart.TaxTotal.String()) // 100 × 5%
	assert.Equal(t, "105", cart.Total.String())

	bad := decimal.NewFromInt(120)
	_, err = f.svc.ApplyTax(context.Background(), dto.ApplyTaxRequest{
		SessionID: f.session.ID.String(),
		TaxRate:   &bad,
	})
	assert.ErrorContains(t, err, "between 0 and 100")
}

func TestApplyTax_FallsBackToBranchSettings(t *testing.T) {
	f := newCartFixture()
	p := seedProduct(f.products, "Power Bank", 30)

	_, err := f.svc.AddItem(context.Background(), dto.AddCartItemRequest{
		SessionID: f.session.ID.String(),
		ProductID: p.ID.String(),
		Quantity:  1,
	})
	require.NoError(t, err)

	// No settings row: the 10% default applies
	cart, err := f.svc.ApplyTax(context.Background(), dto.ApplyTaxRequest{
		SessionID: f.session.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "3", cart.TaxTotal.String())

	// With a branch setting, its rate wins over the default
	require.NoError(t, f.sessionRepo.SaveSetting(context.Background(), &model.POSSetting{
		ID:       uuid.New(),
		BranchID: f.branchID,
		TaxRate:  decimal.NewFromInt(20),
	}))
	cart, err = f.svc.ApplyTax(context.Background(), dto.ApplyTaxRequest{
		SessionID: f.session.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "6", cart.TaxTotal.String())
}

func TestCheckout_BuildsDraftSaleAndClearsCart(t *testing.T) {
	f := newCartFixture()
	p1 := seedProduct(f.products, "Galaxy A16", 200)
	p2 := seedProduct(f.products, "Phone Case", 10)
	f.invRepo.seed(p1.ID, f.branchID, 10, 2)
	f.invRepo.seed(p2.ID, f.branchID, 10, 2)

	_, err := f.svc.AddItem(context.Background(), dto.AddCartItemRequest{
		SessionID: f.session.ID.String(),
		ProductID: p1.ID.String(),
		Quantity:  1,
	})
	require.NoError(t, err)
	_, err = f.svc.AddItem(context.Background(), dto.AddCartItemRequest{
		SessionID: f.session.ID.String(),
		ProductID: p2.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	rate := decimal.NewFromInt(10)
	_, err = f.svc.ApplyTax(context.Background(), dto.ApplyTaxRequest{
		SessionID: f.session.ID.String(),
		TaxRate:   &rate,
	})
	require.NoError(t, err)

	sale, err := f.svc.Checkout(context.Background(), dto.CheckoutRequest{
		SessionID:     f.session.ID.String(),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SaleDraft, sale.Status)
	assert.Len(t, sale.Items, 2)
	// 200 + 20 subtotal, 22 tax carried over from the cart
	assert.Equal(t, "220", sale.Subtotal.String())
	assert.Equal(t, "22", sale.TaxAmount.String())
	assert.Equal(t, "242", sale.TotalAmount.String())

	// The cart is emptied once the draft exists
	cart, err := f.svc.GetCart(context.Background(), f.session.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	f := newCartFixture()

	_, err := f.svc.Checkout(context.Background(), dto.CheckoutRequest{
		SessionID: f.session.ID.String(),
	})
	assert.ErrorContains(t, err, "cart is empty")
}
