package telegram

// Update is the webhook event envelope delivered by the Bot API.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type Message struct {
	MessageID int64     `json:"message_id"`
	From      *User     `json:"from,omitempty"`
	Chat      *Chat     `json:"chat,omitempty"`
	Text      string    `json:"text,omitempty"`
	Document  *Document `json:"document,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

type User struct {
	ID       int64  `json:"id"`
	IsBot    bool   `json:"is_bot,omitempty"`
	Username string `json:"username,omitempty"`
}

type Document struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// ChatID returns the identifier outbound replies should target. Private
// chats carry it in Chat; the sender ID is the fallback.
func (m *Message) ChatID() int64 {
	if m.Chat != nil && m.Chat.ID != 0 {
		return m.Chat.ID
	}
	if m.From != nil {
		return m.From.ID
	}
	return 0
}

// File is the getFile result: FilePath is the transient download path valid
// for about an hour.
type File struct {
	FileID   string `json:"file_id"`
	FileSize int64  `json:"file_size,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}
