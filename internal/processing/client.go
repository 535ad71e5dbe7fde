package processing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/courtflow/intake-server-go/internal/config"
	"github.com/courtflow/intake-server-go/internal/model"
)

// Field names of the classify contract. All evidence files share one field
// name and all case documents share another, so the receiving side can
// rebuild both ordered lists from field names alone.
const (
	fieldCaseID   = "CaseID"
	fieldLawyerID = "LawyerID"
	fieldJudgeID  = "JudgeID"
	fieldUserID   = "UserID"
	fieldEvidence = "Evidence"
	fieldFullDocs = "Full_docs"
)

// Client submits assembled cases to the downstream classification service.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(classifyURL string) *Client {
	return &Client{
		url:  classifyURL,
		http: &http.Client{Timeout: config.ClassifyTimeout},
	}
}

// Submit sends the case metadata and both attachment lists as one multipart
// request and returns the service's response body. Any transport failure or
// non-2xx status is a single submission error; nothing is retried here.
func (c *Client) Submit(ctx context.Context, sub model.CaseSubmission) (json.RawMessage, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		fieldCaseID:   sub.CaseID,
		fieldLawyerID: sub.LawyerID,
		fieldJudgeID:  sub.JudgeID,
		fieldUserID:   sub.UserID,
	}
	for _, name := range []string{fieldCaseID, fieldLawyerID, fieldJudgeID, fieldUserID} {
		if err := writer.WriteField(name, fields[name]); err != nil {
			return nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if err := appendFiles(writer, fieldEvidence, sub.Evidences); err != nil {
		return nil, err
	}
	if err := appendFiles(writer, fieldFullDocs, sub.FullDocs); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit case: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("submit case: http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("submit case: response is not valid JSON")
	}
	return raw, nil
}

// appendFiles adds every attachment under the same repeated field name,
// preserving list order. An attachment is read from its local file when one
// exists, falling back to the in-memory copy.
func appendFiles(writer *multipart.Writer, field string, files []model.Attachment) error {
	for i, f := range files {
		filename := f.DisplayName
		if filename == "" {
			filename = fmt.Sprintf("%s_%d", strings.ToLower(field), i)
		}

		src, err := openAttachment(f)
		if err != nil {
			return fmt.Errorf("attach %s %q: %w", field, filename, err)
		}

		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			src.Close()
			return fmt.Errorf("create %s part: %w", field, err)
		}
		_, copyErr := io.Copy(part, src)
		src.Close()
		if copyErr != nil {
			return fmt.Errorf("attach %s %q: %w", field, filename, copyErr)
		}
	}
	return nil
}

func openAttachment(att model.Attachment) (io.ReadCloser, error) {
	if att.LocalPath != "" {
		file, err := os.Open(att.LocalPath)
		if err == nil {
			return file, nil
		}
		if att.Data == nil {
			return nil, err
		}
	}
	if att.Data == nil {
		return nil, fmt.Errorf("no local file and no buffer")
	}
	return io.NopCloser(bytes.NewReader(att.Data)), nil
}
