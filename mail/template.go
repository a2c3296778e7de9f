package mail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

const (
	subjectVerification     = "Email confirmation"
	subjectPasswordRecovery = "Password recovery"

	descriptionVerification     = "Thank you for registering on our platform. To confirm your email, please follow the link below"
	descriptionPasswordRecovery = "To recover your password, please follow the link below"
)

var bodyTemplate = template.Must(template.New("mail").Parse(`{{.Title}}

{{.Description}}:

{{.Link}}

If you did not request this, you can safely ignore this message.
`))

type bodyData struct {
	Title       string
	Description string
	Link        string
}

func renderBody(data bodyData) (string, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildMessage assembles a complete RFC 5322 message with headers.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// verifyLink joins the configured base URL with the confirmation token.
func verifyLink(baseURL, confirmationToken string) string {
	if baseURL == "" {
		return confirmationToken
	}
	return strings.TrimRight(baseURL, "/") + "/" + confirmationToken
}
