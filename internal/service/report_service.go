package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ReportService interface {
	// CreateReport persists a queued report and hands generation to the
	// worker pool. The response carries status "queued"; the file appears
	// once the worker finishes.
	CreateReport(ctx context.Context, userID uuid.UUID, req dto.CreateReportRequest) (*dto.ReportResponse, error)
	GetReport(ctx context.Context, id uuid.UUID) (*dto.ReportResponse, error)
	ListReports(ctx context.Context, page, limit int) ([]dto.ReportResponse, int64, error)
}

type reportService struct {
	repo       repository.ReportRepository
	dispatcher *worker.Dispatcher
}

func NewReportService(repo repository.ReportRepository, dispatcher *worker.Dispatcher) ReportService {
	return &reportService{repo: repo, dispatcher: dispatcher}
}

func (s *reportService) CreateReport(ctx context.Context, userID uuid.UUID, req dto.CreateReportRequest) (*dto.ReportResponse, error) {
	params, err := json.Marshal(worker.ReportParams{
		StartDate: req.DateFrom,
		EndDate:   req.DateTo,
		BranchID:  req.BranchID,
	})
	if err != nil {
		return nil, err
	}
	paramsJSON := string(params)

	report := model.Report{
		Title:       req.Title,
		Type:        req.Type,
		Format:      req.Format,
		Status:      model.ReportQueued,
		Parameters:  &paramsJSON,
		CreatedByID: &userID,
	}
	if err := s.repo.Create(ctx, &report); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		err := s.dispatcher.EnqueueReport(ctx, worker.ReportJobPayload{ReportID: report.ID.String()})
		if err != nil {
			// The retry cron does not cover reports; surface the stall
			log.Error().Err(err).Str("report_id", report.ID.String()).Msg("report enqueue failed")
		}
	}
	return reportToResponse(&report), nil
}

func (s *reportService) GetReport(ctx context.Context, id uuid.UUID) (*dto.ReportResponse, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("report not found")
	}
	return reportToResponse(report), nil
}

func (s *reportService) ListReports(ctx context.Context, page, limit int) ([]dto.ReportResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	reports, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, *reportToResponse(&reports[i]))
	}
	return out, total, nil
}

func reportToResponse(r *model.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:        r.ID.String(),
		Title:     r.Title,
		Type:      r.Type,
		Format:    r.Format,
		Status:    r.Status,
		FilePath:  r.FilePath,
		CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
