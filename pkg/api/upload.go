package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadAttachment attaches a file to a shift (rota sheets, doctor's notes).
// The reader is drained once up front so retries can resend the same bytes.
func (c *Client) UploadAttachment(ctx context.Context, shiftID int, filename string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("api: reading attachment %q: %w", filename, err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("api: building attachment form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("api: writing attachment form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("api: closing attachment form: %w", err)
	}

	path := fmt.Sprintf("/api/shifts/%d/attachments", shiftID)
	var out envelope
	return c.do(ctx, http.MethodPost, path, buf.Bytes(), mw.FormDataContentType(), &out)
}
