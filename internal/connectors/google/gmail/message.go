package gmail

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
)

// buildRawMessage encodes a plain-text RFC 2822 message as base64url,
// the form expected by users.messages.send.
func buildRawMessage(to, subject, body string) (string, error) {
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return "", fmt.Errorf("header values must not contain line breaks")
	}

	var b strings.Builder
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}

// webURL links a message id to the Gmail web client.
func webURL(messageID string) string {
	if messageID == "" {
		return ""
	}
	return "https://mail.google.com/mail/u/0/#all/" + messageID
}
