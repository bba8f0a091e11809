// Package copygen produces marketing copy for the site's admin tools.
package copygen

import (
	"context"
	"fmt"
	"strings"
)

// Kind selects which prompt template a generation request uses.
type Kind string

const (
	KindService Kind = "service"
	KindProject Kind = "project"
	KindBlog    Kind = "blog"
	KindAbout   Kind = "about"
)

// Generation results degrade to fixed strings rather than errors so the
// admin UI always has something to show in the text field.
const (
	MsgEmpty  = "Could not generate content."
	MsgFailed = "Error generating content. Please check your network or API key."
)

// Generator writes marketing copy about a topic. Implementations never
// return an error string other than MsgEmpty or MsgFailed.
type Generator interface {
	Generate(ctx context.Context, kind Kind, topic, extra string) string
}

// buildPrompt renders the template for a kind. Unknown kinds fall through
// to the company mission statement.
func buildPrompt(kind Kind, topic, extra string) string {
	switch kind {
	case KindService:
		return fmt.Sprintf(`Write a luxurious, high-end description for a tiling service: %q. Target audience: Wealthy homeowners in Lagos, Nigeria. Tone: Professional, Sophisticated, Reliable. Max 80 words.`, topic)
	case KindProject:
		return fmt.Sprintf(`Write a captivating project description for a luxury tiling job done at %q. Mention premium materials like Italian Marble or Spanish Porcelain. Max 60 words.`, topic)
	case KindBlog:
		var b strings.Builder
		b.WriteString("Write a sophisticated, engaging blog post body for a luxury tiling website (HanifGold).\n")
		fmt.Fprintf(&b, "Title/Topic: %q\n", topic)
		if extra != "" {
			fmt.Fprintf(&b, "Category: %s.\n", extra)
		}
		b.WriteString(`Target Audience: High-net-worth individuals in Lagos, Ibadan, and Ogun State.

Structure:
1. Introduction: Write an engaging opening that hooks the reader instantly.
2. Body: Provide valuable insights, trends, or maintenance tips relevant to the topic.
3. Conclusion: Write a strong, memorable conclusion.

Tone: Expert, Elegant, Professional.
Format: Use Markdown (e.g., ## for section headings).
Length: Approx 250-350 words.`)
		return b.String()
	default:
		return `Write a professional mission statement for a luxury tiling company called HanifGold based in Lagos. Focus on precision, art, and durability. Max 50 words.`
	}
}
