package intake

// Messages is the table of user-facing replies the bot sends. It is
// injected into the service so deployments can reword or localize prompts
// and tests can assert on outcomes instead of literals.
type Messages struct {
	Welcome          string
	RequestLawyerID  string
	RequestJudgeID   string
	RequestUserID    string
	RequestEvidences string
	RequestFullDocs  string
	ProcessingCase   string
	ProcessingWait   string
	Error            string
	InvalidGreeting  string
	InvalidUsername  string
	DocumentReceived string
	DuplicateFile    string
	NeedEvidence     string
	NeedFullDoc      string
	SendOrDone       string
	DownloadFailed   string
	CaseComplete     string
	NewCasePrompt    string
}

func DefaultMessages() Messages {
	return Messages{
		Welcome:          "👋 Welcome! I'm here to help you with your legal case documentation.\n\nPlease provide the following information:",
		RequestLawyerID:  "📝 Please send the Lawyer's Username (single word):",
		RequestJudgeID:   "⚖️ Please send the Judge's Username (single word):",
		RequestUserID:    "👤 Please send the Client's Username (single word):",
		RequestEvidences: "📎 Please send evidence documents for the court case.\n\nYou can send multiple documents. When you're done, send 'DONE'.",
		RequestFullDocs:  "📄 Please send other case documents.\n\nYou can send multiple documents. When you're done, send 'DONE'.",
		ProcessingCase:   "⏳ Processing your case data and sending to the server...",
		ProcessingWait:   "Please wait while we process your case...",
		Error:            "❌ An error occurred while processing your request. Please try again.",
		InvalidGreeting:  "Please start by sending 'hi' or 'hello' to begin the process.",
		InvalidUsername:  "Username must be a single word. Please try again:",
		DocumentReceived: "✅ Document received. Send more documents or type 'DONE' when finished.",
		DuplicateFile:    "⚠️ This file has already been uploaded. Send a different file or type 'DONE'.",
		NeedEvidence:     "⚠️ Please send at least one evidence document before typing 'DONE'.",
		NeedFullDoc:      "⚠️ Please send at least one case document before typing 'DONE'.",
		SendOrDone:       "Please send a document or type 'DONE' when finished.",
		DownloadFailed:   "❌ Failed to download the document. Please try again.",
		CaseComplete:     "Your case is complete. Send 'hi' or 'hello' to start a new case.",
		NewCasePrompt:    "You can start a new case by sending 'hi' or 'hello'.",
	}
}
