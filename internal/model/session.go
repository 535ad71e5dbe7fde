package model

// Attachment is a downloaded copy of a file a user uploaded to the chat.
// SourceFileID is the upstream file handle and is the deduplication key
// within a session. Data is an optional in-memory copy of the bytes; it is
// never serialized into the session store.
type Attachment struct {
	SourceFileID string `json:"sourceFileId"`
	LocalPath    string `json:"localPath"`
	DisplayName  string `json:"displayName"`
	Data         []byte `json:"-"`
}

// IntakeSession is the per-chat conversation state, serialized as JSON into
// the session store. The intake service is its sole writer.
type IntakeSession struct {
	State     IntakeState  `json:"state"`
	LawyerID  string       `json:"lawyerId,omitempty"`
	JudgeID   string       `json:"judgeId,omitempty"`
	UserID    string       `json:"userId,omitempty"`
	Evidences []Attachment `json:"evidences"`
	FullDocs  []Attachment `json:"fullDocs"`
	CaseID    string       `json:"caseId,omitempty"`
}

// NewIntakeSession returns a fresh session at the start of the conversation.
func NewIntakeSession() *IntakeSession {
	return &IntakeSession{
		State:     StateWaitingForGreeting,
		Evidences: []Attachment{},
		FullDocs:  []Attachment{},
	}
}

// Attachments returns both lists combined, evidence first.
func (s *IntakeSession) Attachments() []Attachment {
	all := make([]Attachment, 0, len(s.Evidences)+len(s.FullDocs))
	all = append(all, s.Evidences...)
	all = append(all, s.FullDocs...)
	return all
}

// ContainsFile reports whether files already holds an attachment downloaded
// from the given source file handle.
func ContainsFile(files []Attachment, sourceFileID string) bool {
	for _, f := range files {
		if f.SourceFileID == sourceFileID {
			return true
		}
	}
	return false
}

// InboundDocument is the document part of an inbound webhook event.
type InboundDocument struct {
	FileID   string
	FileName string
}
