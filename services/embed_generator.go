package services

import (
	"fmt"
)

// EmbedGenerator builds the copy-paste snippet site owners drop into their
// pages. Presentation settings are not inlined: the widget script loads them
// from the server so config changes propagate without re-embedding.
type EmbedGenerator struct {
	serverURL string
}

func NewEmbedGenerator(serverURL string) *EmbedGenerator {
	return &EmbedGenerator{serverURL: serverURL}
}

// ScriptURL returns the address of the widget loader script.
func (g *EmbedGenerator) ScriptURL() string {
	return g.serverURL + "/api/v1/widget.js"
}

// GenerateEmbedCode renders the HTML snippet for a widget key.
func (g *EmbedGenerator) GenerateEmbedCode(widgetKey string) string {
	containerID := "eventmap-widget-" + widgetKey[:min(8, len(widgetKey))]

	return fmt.Sprintf(`<!-- Event Map Widget -->
<script src="%s" data-widget-key="%s" data-container="%s"></script>`,
		g.ScriptURL(), widgetKey, containerID)
}

// PreviewURL returns the hosted preview page for a widget key.
func (g *EmbedGenerator) PreviewURL(widgetKey string) string {
	return fmt.Sprintf("%s/preview/%s", g.serverURL, widgetKey)
}
