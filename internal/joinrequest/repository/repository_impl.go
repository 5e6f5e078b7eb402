package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/brightfund/brightfund/internal/joinrequest/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, req *domain.RegistrationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.RegistrationRequest, error) {
	var req domain.RegistrationRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *repository) HasActiveRequest(ctx context.Context, orgID snowflake.ID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.RegistrationRequest{}).
		Where("org_id = ? AND email = ? AND status <> ?", orgID, email, domain.StatusRejected).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) List(ctx context.Context, orgID snowflake.ID, filter domain.ListFilter) ([]domain.RegistrationRequest, error) {
	q := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("requested_at DESC")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(job_title) LIKE ? OR LOWER(department) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	var requests []domain.RegistrationRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repository) Statistics(ctx context.Context, orgID snowflake.ID) (domain.Statistics, error) {
	type row struct {
		Status domain.RequestStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.RegistrationRequest{}).
		Select("status, COUNT(*) AS count").
		Where("org_id = ?", orgID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return domain.Statistics{}, err
	}

	var stats domain.Statistics
	for _, r := range rows {
		switch r.Status {
		case domain.StatusPending:
			stats.Pending = r.Count
		case domain.StatusApproved:
			stats.Approved = r.Count
		case domain.StatusRejected:
			stats.Rejected = r.Count
		}
		stats.Total += r.Count
	}
	return stats, nil
}

func (r *repository) DecideIfPending(ctx context.Context, req *domain.RegistrationRequest) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.RegistrationRequest{}).
		Where("id = ? AND status = ?", req.ID, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":           req.Status,
			"rejection_reason": req.RejectionReason,
			"reviewed_at":      req.ReviewedAt,
			"reviewed_by":      req.ReviewedBy,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
