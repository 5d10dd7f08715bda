package runtime

import (
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
)

// StopActiveVideo blanks the source of every video embed on the page, which
// halts playback without any player-specific API. It returns how many embeds
// were playing.
func StopActiveVideo(doc *dom.Document) int {
	stopped := 0
	for _, embed := range doc.FindAll(dom.ClassVideoEmbed) {
		if embed.Attr("src") == "" {
			continue
		}
		embed.SetAttr("src", "")
		stopped++
	}
	return stopped
}

// renderVideo replaces the embed in the video container. The embed is always
// rebuilt, even for the same URL, so playback restarts cleanly.
func renderVideo(c *dom.Element, step domain.StepDescriptor) *dom.Element {
	c.Clear()
	return c.Append("iframe",
		"class", dom.ClassVideoEmbed,
		"src", step.FilePath,
		"title", step.AltText,
		"aria-label", step.AltText,
		"allow", "autoplay; fullscreen; picture-in-picture",
		"allowfullscreen", "true",
		"frameborder", "0",
	)
}
