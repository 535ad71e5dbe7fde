package repository

import (
	"context"

	"github.com/courtflow/intake-server-go/internal/database"
	"github.com/courtflow/intake-server-go/internal/model"
)

type CaseRepository interface {
	Create(ctx context.Context, params model.CreateCaseParams) (*model.Case, error)
	FindByCaseID(ctx context.Context, caseID string) (*model.Case, error)
	FindByParticipant(ctx context.Context, username string) ([]model.Case, error)
	Count(ctx context.Context) (int, error)
}

type caseRepo struct {
	db database.DBTX
}

func NewCaseRepository(db database.DBTX) CaseRepository {
	return &caseRepo{db: db}
}

func (r *caseRepo) Create(ctx context.Context, params model.CreateCaseParams) (*model.Case, error) {
	var c model.Case
	err := r.db.GetContext(ctx, &c, `
		INSERT INTO cases (case_id, lawyer_id, judge_id, user_id, response_fields)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.CaseID, params.LawyerID, params.JudgeID, params.UserID, params.ResponseFields)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepo) FindByCaseID(ctx context.Context, caseID string) (*model.Case, error) {
	var c model.Case
	err := r.db.GetContext(ctx, &c, `
		SELECT * FROM cases WHERE case_id = $1
	`, caseID)
	return HandleNotFound(&c, err)
}

// FindByParticipant returns cases where the username holds any of the three
// roles, newest first.
func (r *caseRepo) FindByParticipant(ctx context.Context, username string) ([]model.Case, error) {
	var cases []model.Case
	err := r.db.SelectContext(ctx, &cases, `
		SELECT * FROM cases
		WHERE lawyer_id = $1 OR judge_id = $1 OR user_id = $1
		ORDER BY created_at DESC
	`, username)
	return cases, err
}

func (r *caseRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM cases`)
	return count, err
}
