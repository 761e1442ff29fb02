package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdown_PlainText(t *testing.T) {
	result := RenderMarkdown("hello world")
	assert.Contains(t, result, "hello world")
}

func TestRenderMarkdown_Bold(t *testing.T) {
	result := RenderMarkdown("**bold text**")
	assert.Contains(t, result, "<strong>bold text</strong>")
}

func TestRenderMarkdown_InlineCode(t *testing.T) {
	result := RenderMarkdown("send `Authorization: Bearer`")
	assert.Contains(t, result, "<code>Authorization: Bearer</code>")
}

func TestRenderMarkdown_SanitizesScript(t *testing.T) {
	result := RenderMarkdown(`<script>alert("xss")</script>`)
	assert.NotContains(t, result, "<script>")
}

func TestRenderMarkdown_GFMStrikethrough(t *testing.T) {
	result := RenderMarkdown("~~deleted~~")
	assert.Contains(t, result, "<del>deleted</del>")
}

func TestRenderHelp(t *testing.T) {
	for _, view := range []string{"login", "dashboard", "api-settings"} {
		assert.NotEmpty(t, renderHelp(view), view)
	}

	assert.Contains(t, renderHelp("api-settings"), "<pre><code>")
	assert.Equal(t, "", renderHelp("no-such-view"))
}
