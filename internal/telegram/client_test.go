package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	err := client.SendMessage(context.Background(), 42, "hello")

	require.NoError(t, err)
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, int64(42), gotBody.ChatID)
	assert.Equal(t, "hello", gotBody.Text)
}

func TestSendMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error_code":403,"description":"bot was blocked by the user"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	err := client.SendMessage(context.Background(), 42, "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot was blocked")
}

func TestGetFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getFile", r.URL.Path)
		assert.Equal(t, "file-1", r.URL.Query().Get("file_id"))
		w.Write([]byte(`{"ok":true,"result":{"file_id":"file-1","file_path":"documents/file_7.pdf"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	file, err := client.GetFile(context.Background(), "file-1")

	require.NoError(t, err)
	assert.Equal(t, "file-1", file.FileID)
	assert.Equal(t, "documents/file_7.pdf", file.FilePath)
}

func TestGetFileRejectsEmptyID(t *testing.T) {
	client := NewClient("http://unused", "test-token")
	_, err := client.GetFile(context.Background(), "  ")
	require.Error(t, err)
}

func TestGetFileMissingPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":{"file_id":"file-1"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	_, err := client.GetFile(context.Background(), "file-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file_path")
}

func TestDownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/file/bottest-token/documents/file_7.pdf", r.URL.Path)
		w.Write([]byte("raw bytes"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	data, err := client.DownloadFile(context.Background(), "documents/file_7.pdf")

	require.NoError(t, err)
	assert.Equal(t, []byte("raw bytes"), data)
}

func TestDownloadFileHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "file is no longer available", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	_, err := client.DownloadFile(context.Background(), "documents/gone.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 404")
}

func TestMessageChatID(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want int64
	}{
		{name: "chat id preferred", msg: Message{Chat: &Chat{ID: 10}, From: &User{ID: 20}}, want: 10},
		{name: "falls back to sender", msg: Message{From: &User{ID: 20}}, want: 20},
		{name: "zero when absent", msg: Message{}, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.msg.ChatID())
		})
	}
}
