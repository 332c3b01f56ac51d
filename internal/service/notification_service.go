package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/worker"

	"github.com/google/uuid"
)

type NotificationService interface {
	// NotifyLowStock alerts the branch manager that a product crossed its
	// reorder level. Called after the triggering transaction commits.
	NotifyLowStock(ctx context.Context, inv *model.Inventory) error
	// NotifyPurchaseReceived alerts the branch manager that a purchase order
	// was received and stock was credited.
	NotifyPurchaseReceived(ctx context.Context, p *model.Purchase) error
	GetNotification(ctx context.Context, id uuid.UUID) (*dto.NotificationResponse, error)
	ListNotifications(ctx context.Context, recipientID uuid.UUID, filter dto.NotificationFilter) (*dto.NotificationListResponse, error)
}

type notificationService struct {
	repo       repository.NotificationRepository
	branches   repository.BranchRepository
	dispatcher *worker.Dispatcher
}

func NewNotificationService(
	repo repository.NotificationRepository,
	branches repository.BranchRepository,
	dispatcher *worker.Dispatcher,
) NotificationService {
	return &notificationService{repo: repo, branches: branches, dispatcher: dispatcher}
}

func (s *notificationService) NotifyLowStock(ctx context.Context, inv *model.Inventory) error {
	branch, err := s.branches.FindByID(ctx, inv.BranchID)
	if err != nil {
		return errors.New("branch not found")
	}
	if branch.ManagerID == nil {
		// No manager assigned — nothing to deliver
		return nil
	}

	product := inv.ProductID.String()
	if inv.Product != nil {
		product = inv.Product.Name
	}

	notifType := model.NotificationLowStock
	title := fmt.Sprintf("Low stock: %s at %s", product, branch.Name)
	if inv.Quantity == 0 {
		notifType = model.NotificationStockOut
		title = fmt.Sprintf("Out of stock: %s at %s", product, branch.Name)
	}

	objType := "inventory"
	objID := inv.ID
	n := &model.Notification{
		Type:  notifType,
		Title: title,
		Message: fmt.Sprintf("%s has %d units left at %s (reorder level %d).",
			product, inv.Quantity, branch.Name, inv.ReorderLevel),
		RecipientID:       *branch.ManagerID,
		DeliveryMethod:    model.DeliveryEmail,
		Status:            model.NotificationPending,
		RelatedObjectType: &objType,
		RelatedObjectID:   &objID,
	}
	return s.createAndEnqueue(ctx, n)
}

func (s *notificationService) NotifyPurchaseReceived(ctx context.Context, p *model.Purchase) error {
	branch, err := s.branches.FindByID(ctx, p.BranchID)
	if err != nil {
		return errors.New("branch not found")
	}
	if branch.ManagerID == nil {
		return nil
	}

	supplier := p.SupplierID.String()
	if p.Supplier != nil {
		supplier = p.Supplier.Name
	}

	objType := "purchase"
	objID := p.ID
	n := &model.Notification{
		Type:  model.NotificationNewPurchase,
		Title: fmt.Sprintf("Purchase %s received", p.ReferenceNumber),
		Message: fmt.Sprintf("Purchase %s from %s was received at %s; stock has been credited. Total: $%s.",
			p.ReferenceNumber, supplier, branch.Name, p.TotalAmount.StringFixed(2)),
		RecipientID:       *branch.ManagerID,
		DeliveryMethod:    model.DeliveryEmail,
		Status:            model.NotificationPending,
		RelatedObjectType: &objType,
		RelatedObjectID:   &objID,
	}
	return s.createAndEnqueue(ctx, n)
}

func (s *notificationService) createAndEnqueue(ctx context.Context, n *model.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	if s.dispatcher != nil {
		// Best-effort: the retry cron requeues rows the enqueue loses
		_ = s.dispatcher.EnqueueNotification(ctx, worker.NotificationJobPayload{
			NotificationID: n.ID.String(),
		})
	}
	return nil
}

func (s *notificationService) GetNotification(ctx context.Context, id uuid.UUID) (*dto.NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("notification not found")
	}
	return notificationToResponse(n), nil
}

func (s *notificationService) ListNotifications(ctx context.Context, recipientID uuid.UUID, filter dto.NotificationFilter) (*dto.NotificationListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	rows, total, err := s.repo.List(ctx, recipientID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(rows))
	for i := range rows {
		items = append(items, *notificationToResponse(&rows[i]))
	}
	return &dto.NotificationListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func notificationToResponse(n *model.Notification) *dto.NotificationResponse {
	resp := &dto.NotificationResponse{
		ID:             n.ID.String(),
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		DeliveryMethod: n.DeliveryMethod,
		Status:         n.Status,
		CreatedAt:      n.CreatedAt.Format(time.RFC3339),
	}
	if n.SentAt != nil {
		v := n.SentAt.Format(time.RFC3339)
		resp.SentAt = &v
	}
	resp.RelatedObjectType = n.RelatedObjectType
	if n.RelatedObjectID != nil {
		v := n.RelatedObjectID.String()
		resp.RelatedObjectID = &v
	}
	return resp
}
