package model

// IntakeState is the conversation state of a chat working through case intake.
type IntakeState string

const (
	StateWaitingForGreeting  IntakeState = "waiting_for_greeting"
	StateWaitingForLawyerID  IntakeState = "waiting_for_lawyer_id"
	StateWaitingForJudgeID   IntakeState = "waiting_for_judge_id"
	StateWaitingForUserID    IntakeState = "waiting_for_user_id"
	StateWaitingForEvidences IntakeState = "waiting_for_evidences"
	StateWaitingForFullDocs  IntakeState = "waiting_for_full_docs"
	StateProcessing          IntakeState = "processing"
	StateCompleted           IntakeState = "completed"
)

// Valid reports whether s is a known intake state. Sessions read back from
// the store with an unknown state are treated as corrupt and reset.
func (s IntakeState) Valid() bool {
	switch s {
	case StateWaitingForGreeting, StateWaitingForLawyerID, StateWaitingForJudgeID,
		StateWaitingForUserID, StateWaitingForEvidences, StateWaitingForFullDocs,
		StateProcessing, StateCompleted:
		return true
	}
	return false
}
