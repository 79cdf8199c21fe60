// Package usecase implements the business logic for the generation feature.
package usecase

import "strings"

// IdentityDirective is the instruction that pins the subject's identity. It
// appears twice in every compiled prompt: once up front and once as a closing
// reinforcement.
const IdentityDirective = "Do not alter the subject's face or identity in any way."

// DefaultStyleKey names the registry entry used when a style key is unknown
// or absent.
const DefaultStyleKey = "default"

// StyleTemplate is one named rendering style: an artist persona plus a
// description of the visual treatment.
type StyleTemplate struct {
	Key     string
	Persona string
	Style   string
}

// styleRegistry maps style keys to their templates. The fallback is an
// explicit entry, not scattered call-site defaults.
var styleRegistry = map[string]StyleTemplate{
	DefaultStyleKey: {
		Key:     DefaultStyleKey,
		Persona: "a versatile professional digital artist",
		Style:   "Render the scene with clean, polished digital art: balanced composition, natural lighting and rich but realistic color.",
	},
	"ghibli": {
		Key:     "ghibli",
		Persona: "a hand-drawn animation background artist",
		Style:   "Render the scene as a warm hand-painted animation still: soft watercolor textures, gentle light, lush natural detail and a storybook atmosphere.",
	},
	"cyberpunk": {
		Key:     "cyberpunk",
		Persona: "a neon-noir concept artist",
		Style:   "Render the scene in a rain-slicked futuristic city mood: saturated neon accents, deep shadows, holographic signage and cinematic contrast.",
	},
	"watercolor": {
		Key:     "watercolor",
		Persona: "a traditional watercolor painter",
		Style:   "Render the scene as a loose watercolor painting: visible paper grain, soft bleeding edges, translucent washes and restrained detail.",
	},
	"vintage": {
		Key:     "vintage",
		Persona: "a film photographer from the 1970s",
		Style:   "Render the scene as an aged film photograph: muted warm tones, subtle grain, slight vignetting and period-appropriate styling.",
	},
}

// StyleFor returns the template registered under key, falling back to the
// default entry for unknown or empty keys. It never fails.
func StyleFor(key string) StyleTemplate {
	if t, ok := styleRegistry[strings.ToLower(strings.TrimSpace(key))]; ok {
		return t
	}
	return styleRegistry[DefaultStyleKey]
}

// PromptParams are the structured fields the compiler assembles into one
// instruction string. Theme and Look are required; empty optional fields are
// omitted from the output.
type PromptParams struct {
	Style        string
	Category     string
	Theme        string
	Look         string
	ColorTone    string
	Usage        string
	CustomPrompt string
}

// CompilePrompt deterministically builds the generation instruction from the
// structured parameters. It is pure and total: every valid input produces a
// non-empty string and unknown style keys fall back to the default template.
func CompilePrompt(p PromptParams) string {
	tmpl := StyleFor(p.Style)

	var b strings.Builder
	b.WriteString("You are ")
	b.WriteString(tmpl.Persona)
	b.WriteString(". ")
	b.WriteString(tmpl.Style)
	b.WriteString("\n")
	b.WriteString(IdentityDirective)
	b.WriteString("\n")

	writeSection(&b, "Category", p.Category)
	writeSection(&b, "Theme", p.Theme)
	writeSection(&b, "Look", p.Look)
	writeSection(&b, "Color tone", p.ColorTone)
	writeSection(&b, "Usage", p.Usage)

	if custom := strings.TrimSpace(p.CustomPrompt); custom != "" {
		b.WriteString("Additional instructions: ")
		b.WriteString(custom)
		b.WriteString("\n")
	}

	b.WriteString("Remember: ")
	b.WriteString(IdentityDirective)
	return b.String()
}

// writeSection appends "Label: value" when the value is non-empty.
func writeSection(b *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}
