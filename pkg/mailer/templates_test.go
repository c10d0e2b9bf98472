package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render(TemplateWelcome, map[string]any{
		"Name":  "Alice",
		"Email": "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.Contains(t, text, "Alice")
	assert.Contains(t, text, "alice@example.com")
	assert.Contains(t, html, "<strong>alice@example.com</strong>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}
