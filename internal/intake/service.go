package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/courtflow/intake-server-go/internal/model"
	"github.com/courtflow/intake-server-go/internal/telegram"
)

// SessionStore is the external per-chat session map. Get returns nil when
// the chat has no session; Set refreshes the expiration window.
type SessionStore interface {
	Get(ctx context.Context, chatID int64) (*model.IntakeSession, error)
	Set(ctx context.Context, chatID int64, sess *model.IntakeSession) error
}

// Messenger sends outbound chat messages.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// FileGateway resolves a file handle to a download path and fetches bytes.
type FileGateway interface {
	GetFile(ctx context.Context, fileID string) (*telegram.File, error)
	DownloadFile(ctx context.Context, filePath string) ([]byte, error)
}

// AttachmentStore pins downloaded bytes to local storage and reclaims them.
type AttachmentStore interface {
	Save(sourceFileID, displayName string, data []byte) (model.Attachment, error)
	RemoveAll(files []model.Attachment)
}

// Classifier submits an assembled case to the processing service.
type Classifier interface {
	Submit(ctx context.Context, sub model.CaseSubmission) (json.RawMessage, error)
}

// CaseRepository persists finalized case records.
type CaseRepository interface {
	Create(ctx context.Context, params model.CreateCaseParams) (*model.Case, error)
}

// Indexer loads a persisted case into the retrieval index.
type Indexer interface {
	LoadCase(ctx context.Context, caseID string) error
}

// Service owns the case intake conversation. It is the sole writer of
// session state; every inbound event is one read-modify-write cycle against
// the session store with no cross-event atomicity.
type Service struct {
	sessions   SessionStore
	chat       Messenger
	gateway    FileGateway
	files      AttachmentStore
	classifier Classifier
	cases      CaseRepository
	indexer    Indexer
	messages   Messages
	resetDelay time.Duration
}

func NewService(
	sessions SessionStore,
	chat Messenger,
	gateway FileGateway,
	files AttachmentStore,
	classifier Classifier,
	cases CaseRepository,
	indexer Indexer,
	messages Messages,
	resetDelay time.Duration,
) *Service {
	return &Service{
		sessions:   sessions,
		chat:       chat,
		gateway:    gateway,
		files:      files,
		classifier: classifier,
		cases:      cases,
		indexer:    indexer,
		messages:   messages,
		resetDelay: resetDelay,
	}
}

var singleWordPattern = regexp.MustCompile(`^\w+$`)

// ValidUsername reports whether text trims to a single whitespace-free token
// of word characters.
func ValidUsername(text string) bool {
	return singleWordPattern.MatchString(strings.TrimSpace(text))
}

// IsGreeting reports whether text is an accepted conversation opener.
func IsGreeting(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "hi", "hello":
		return true
	}
	return false
}

// IsDone reports whether text is the end-of-list token.
func IsDone(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "done")
}

// HandleUpdate processes one inbound webhook event for a chat. Every branch
// resolves to a reply plus at most one session write; nothing escalates past
// this method.
func (s *Service) HandleUpdate(ctx context.Context, chatID int64, text string, doc *model.InboundDocument) {
	sess, err := s.getOrCreate(ctx, chatID)
	if err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Msg("failed to load session")
		return
	}

	if !sess.State.Valid() {
		// Corrupt stored state. Force the conversation back to the start.
		log.Warn().Int64("chatId", chatID).Str("state", string(sess.State)).Msg("unknown session state, resetting")
		s.setSession(ctx, chatID, model.NewIntakeSession())
		s.send(ctx, chatID, s.messages.InvalidGreeting)
		return
	}

	switch sess.State {
	case model.StateWaitingForGreeting:
		if text != "" {
			s.handleGreeting(ctx, chatID, sess, text)
		}

	case model.StateWaitingForLawyerID, model.StateWaitingForJudgeID, model.StateWaitingForUserID:
		if text != "" {
			s.handleUsername(ctx, chatID, sess, text)
		}

	case model.StateWaitingForEvidences, model.StateWaitingForFullDocs:
		s.handleDocuments(ctx, chatID, sess, text, doc)

	case model.StateProcessing:
		s.send(ctx, chatID, s.messages.ProcessingWait)

	case model.StateCompleted:
		s.send(ctx, chatID, s.messages.CaseComplete)
	}
}

func (s *Service) getOrCreate(ctx context.Context, chatID int64) (*model.IntakeSession, error) {
	sess, err := s.sessions.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess = model.NewIntakeSession()
		if err := s.sessions.Set(ctx, chatID, sess); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func (s *Service) handleGreeting(ctx context.Context, chatID int64, sess *model.IntakeSession, text string) {
	if !IsGreeting(text) {
		s.send(ctx, chatID, s.messages.InvalidGreeting)
		return
	}

	s.send(ctx, chatID, s.messages.Welcome)
	s.send(ctx, chatID, s.messages.RequestLawyerID)
	sess.State = model.StateWaitingForLawyerID
	s.setSession(ctx, chatID, sess)
}

func (s *Service) handleUsername(ctx context.Context, chatID int64, sess *model.IntakeSession, text string) {
	if !ValidUsername(text) {
		s.send(ctx, chatID, s.messages.InvalidUsername)
		return
	}

	username := strings.TrimSpace(text)
	var prompt string
	switch sess.State {
	case model.StateWaitingForLawyerID:
		sess.LawyerID = username
		sess.State = model.StateWaitingForJudgeID
		prompt = s.messages.RequestJudgeID
	case model.StateWaitingForJudgeID:
		sess.JudgeID = username
		sess.State = model.StateWaitingForUserID
		prompt = s.messages.RequestUserID
	case model.StateWaitingForUserID:
		sess.UserID = username
		sess.State = model.StateWaitingForEvidences
		prompt = s.messages.RequestEvidences
	}

	s.setSession(ctx, chatID, sess)
	s.send(ctx, chatID, prompt)
}

func (s *Service) handleDocuments(ctx context.Context, chatID int64, sess *model.IntakeSession, text string, doc *model.InboundDocument) {
	collectingEvidence := sess.State == model.StateWaitingForEvidences

	if text != "" && IsDone(text) {
		s.handleDone(ctx, chatID, sess, collectingEvidence)
		return
	}

	if doc == nil {
		s.send(ctx, chatID, s.messages.SendOrDone)
		return
	}

	list := sess.FullDocs
	if collectingEvidence {
		list = sess.Evidences
	}

	// Dedup by file handle before any network I/O.
	if model.ContainsFile(list, doc.FileID) {
		log.Info().
			Int64("chatId", chatID).
			Str("fileId", doc.FileID).
			Str("fileName", doc.FileName).
			Msg("skipping duplicate file")
		s.send(ctx, chatID, s.messages.DuplicateFile)
		return
	}

	att, err := s.download(ctx, doc)
	if err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Str("fileId", doc.FileID).Msg("document download failed")
		s.send(ctx, chatID, s.messages.DownloadFailed)
		return
	}

	if collectingEvidence {
		sess.Evidences = append(sess.Evidences, att)
	} else {
		sess.FullDocs = append(sess.FullDocs, att)
	}
	s.setSession(ctx, chatID, sess)
	s.send(ctx, chatID, s.messages.DocumentReceived)
}

func (s *Service) handleDone(ctx context.Context, chatID int64, sess *model.IntakeSession, collectingEvidence bool) {
	if collectingEvidence {
		if len(sess.Evidences) == 0 {
			s.send(ctx, chatID, s.messages.NeedEvidence)
			return
		}
		sess.State = model.StateWaitingForFullDocs
		s.setSession(ctx, chatID, sess)
		s.send(ctx, chatID, s.messages.RequestFullDocs)
		return
	}

	if len(sess.FullDocs) == 0 {
		s.send(ctx, chatID, s.messages.NeedFullDoc)
		return
	}
	sess.State = model.StateProcessing
	s.setSession(ctx, chatID, sess)
	s.processCase(ctx, chatID, sess)
}

func (s *Service) download(ctx context.Context, doc *model.InboundDocument) (model.Attachment, error) {
	file, err := s.gateway.GetFile(ctx, doc.FileID)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("resolve file: %w", err)
	}

	data, err := s.gateway.DownloadFile(ctx, file.FilePath)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("fetch file: %w", err)
	}

	displayName := doc.FileName
	if displayName == "" {
		displayName = path.Base(file.FilePath)
	}

	att, err := s.files.Save(doc.FileID, displayName, data)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("store file: %w", err)
	}
	return att, nil
}

// processCase submits the assembled case, persists the result, and triggers
// indexing. Either the full case record lands or the session is fully reset
// with all attachment storage reclaimed; there is no half-applied outcome.
func (s *Service) processCase(ctx context.Context, chatID int64, sess *model.IntakeSession) {
	s.send(ctx, chatID, s.messages.ProcessingCase)

	caseID := uuid.NewString()
	response, err := s.classifier.Submit(ctx, model.CaseSubmission{
		CaseID:    caseID,
		LawyerID:  sess.LawyerID,
		JudgeID:   sess.JudgeID,
		UserID:    sess.UserID,
		Evidences: sess.Evidences,
		FullDocs:  sess.FullDocs,
	})
	if err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Str("caseId", caseID).Msg("case submission failed")
		s.fail(ctx, chatID, sess)
		return
	}

	fields := json.RawMessage(response)
	created, err := s.cases.Create(ctx, model.CreateCaseParams{
		CaseID:         caseID,
		LawyerID:       sess.LawyerID,
		JudgeID:        sess.JudgeID,
		UserID:         sess.UserID,
		ResponseFields: &fields,
	})
	if err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Str("caseId", caseID).Msg("case persistence failed")
		s.fail(ctx, chatID, sess)
		return
	}

	// Indexing never blocks or fails the user-visible flow.
	go s.indexCase(caseID)

	s.send(ctx, chatID, s.summary(caseID, sess))
	s.files.RemoveAll(sess.Attachments())

	sess.State = model.StateCompleted
	sess.CaseID = caseID
	s.setSession(ctx, chatID, sess)

	log.Info().
		Int64("chatId", chatID).
		Str("caseId", caseID).
		Str("recordId", created.ID).
		Int("evidences", len(sess.Evidences)).
		Int("fullDocs", len(sess.FullDocs)).
		Msg("case created")

	// The success summary stays on screen for a moment before the bot
	// offers a fresh start. The reset always fires, even if the user
	// sends something during the delay.
	time.AfterFunc(s.resetDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.setSession(ctx, chatID, model.NewIntakeSession())
		s.send(ctx, chatID, s.messages.NewCasePrompt)
	})
}

// fail resolves a submission or persistence error: generic message, storage
// reclaimed, session back to the start. Never retried.
func (s *Service) fail(ctx context.Context, chatID int64, sess *model.IntakeSession) {
	s.send(ctx, chatID, s.messages.Error)
	s.files.RemoveAll(sess.Attachments())
	s.setSession(ctx, chatID, model.NewIntakeSession())
}

func (s *Service) indexCase(caseID string) {
	// The indexing client bounds the call itself.
	if err := s.indexer.LoadCase(context.Background(), caseID); err != nil {
		log.Error().Err(err).Str("caseId", caseID).Msg("failed to load case into retrieval index")
	}
}

func (s *Service) summary(caseID string, sess *model.IntakeSession) string {
	return fmt.Sprintf(
		"✅ Case created successfully!\n\n"+
			"📋 Case Summary:\n"+
			"🆔 Case ID: %s\n"+
			"👨‍⚖️ Lawyer: %s\n"+
			"⚖️ Judge: %s\n"+
			"👤 Client: %s\n"+
			"📎 Evidence Documents: %d\n"+
			"📄 Case Documents: %d\n\n"+
			"Your case has been successfully created and sent for processing!",
		caseID, sess.LawyerID, sess.JudgeID, sess.UserID, len(sess.Evidences), len(sess.FullDocs),
	)
}

func (s *Service) setSession(ctx context.Context, chatID int64, sess *model.IntakeSession) {
	if err := s.sessions.Set(ctx, chatID, sess); err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Msg("failed to write session")
	}
}

func (s *Service) send(ctx context.Context, chatID int64, text string) {
	if err := s.chat.SendMessage(ctx, chatID, text); err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Msg("failed to send message")
	}
}
