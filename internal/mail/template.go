package mail

import (
	"html/template"
	"strings"
)

// WelcomeContext is the typed template context for the welcome mail.
type WelcomeContext struct {
	Username string
}

const welcomeTemplate = `<!DOCTYPE html>
<html>
  <body>
    <h1>Welcome, {{.Username}}!</h1>
    <p>Thank you for registering with us. Your account is ready to use.</p>
    <p>We've attached a little welcome gift to this email.</p>
  </body>
</html>
`

var welcomeTmpl = template.Must(template.New("welcome").Parse(welcomeTemplate))

// renderWelcome is a pure function of the template and its context.
func renderWelcome(tctx WelcomeContext) (string, error) {
	var b strings.Builder
	if err := welcomeTmpl.Execute(&b, tctx); err != nil {
		return "", err
	}
	return b.String(), nil
}
