package mailer

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

const welcomeSubject = "Welcome to MentorBit"

const welcomeText = `Hi {{.Name}},

Your account {{.Email}} is ready. Sign in and start learning.

The MentorBit team
`

const welcomeHTML = `<html><body>
<p>Hi {{.Name}},</p>
<p>Your account <strong>{{.Email}}</strong> is ready. Sign in and start learning.</p>
<p>The MentorBit team</p>
</body></html>`

var (
	welcomeTextTpl = texttpl.Must(texttpl.New("welcome_text").Parse(welcomeText))
	welcomeHTMLTpl = htmltpl.Must(htmltpl.New("welcome_html").Parse(welcomeHTML))
)

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case TemplateWelcome:
		var tb, hb bytes.Buffer
		if err = welcomeTextTpl.Execute(&tb, data); err != nil {
			return
		}
		if err = welcomeHTMLTpl.Execute(&hb, data); err != nil {
			return
		}
		return welcomeSubject, tb.String(), hb.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
