package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #333333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 24px;">
    <p style="font-size: 16px;">{{.Message}}</p>
    <p style="margin-top: 24px;">
      <a href="{{.Href}}" style="background-color: #1f6fb2; color: #ffffff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">{{.Label}}</a>
    </p>
  </div>
</body>
</html>
`))

type emailView struct {
	Message string
	Href    string
	Label   string
}

// RequestURL ссылка на заявку в клиентском приложении
func RequestURL(publicURL string, requestID uint) string {
	return fmt.Sprintf("%s/client/support-requests/%d", strings.TrimRight(publicURL, "/"), requestID)
}

// RenderEmail оборачивает сообщение в html письмо с кнопкой перехода
func RenderEmail(message, href, label string) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, emailView{Message: message, Href: href, Label: label}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
