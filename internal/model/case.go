package model

import (
	"encoding/json"
	"time"
)

// Case is a finalized case record. ResponseFields carries whatever the
// processing service returned for the case, stored verbatim as JSONB.
type Case struct {
	ID             string           `db:"id" json:"id"`
	CaseID         string           `db:"case_id" json:"caseId"`
	LawyerID       string           `db:"lawyer_id" json:"lawyerId"`
	JudgeID        string           `db:"judge_id" json:"judgeId"`
	UserID         string           `db:"user_id" json:"userId"`
	ResponseFields *json.RawMessage `db:"response_fields" json:"responseFields,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"createdAt"`
}

type CreateCaseParams struct {
	CaseID         string
	LawyerID       string
	JudgeID        string
	UserID         string
	ResponseFields *json.RawMessage
}

// CaseSubmission is the payload handed to the processing service. It exists
// only for the duration of one submission.
type CaseSubmission struct {
	CaseID    string
	LawyerID  string
	JudgeID   string
	UserID    string
	Evidences []Attachment
	FullDocs  []Attachment
}
