package editor

import "strings"

// Preset names form a closed set shared by all providers.
const (
	PresetDefault = "default"
	PresetEmail   = "email"
	PresetCommit  = "commit"
	PresetNotes   = "notes"
	PresetCode    = "code"
)

var presetPrompts = map[string]string{
	PresetDefault: `Clean up this transcribed speech. Fix grammar, remove filler words,
add proper punctuation and capitalization. Keep the meaning and tone intact.
Return ONLY the cleaned text, nothing else.

Text: {text}`,
	PresetEmail: `Convert this transcribed speech into a professional email.
Fix grammar, structure it properly with greeting/body/closing if appropriate.
Be concise but complete. Return ONLY the email text, nothing else.

Text: {text}`,
	PresetCommit: `Convert this transcribed speech into a concise git commit message.
Follow conventional commit format if possible (feat:, fix:, docs:, etc.).
Keep it under 72 characters for the first line. Return ONLY the commit message.

Text: {text}`,
	PresetNotes: `Clean up this transcribed speech into well-formatted notes.
Use bullet points where appropriate. Fix grammar and organize logically.
Return ONLY the formatted notes, nothing else.

Text: {text}`,
	PresetCode: `Convert this transcribed speech into code or a code comment.
If it's describing code, write the code. If it's explaining something,
make it a clear comment. Return ONLY the code/comment, nothing else.

Text: {text}`,
}

// ValidPreset reports whether name is a known preset.
func ValidPreset(name string) bool {
	_, ok := presetPrompts[name]
	return ok
}

// buildPrompt resolves the prompt for a request: a custom prompt wins,
// then the named preset, then the default.
func buildPrompt(text, preset, customPrompt string) string {
	template := customPrompt
	if template == "" {
		var ok bool
		template, ok = presetPrompts[preset]
		if !ok {
			template = presetPrompts[PresetDefault]
		}
	}
	return strings.ReplaceAll(template, "{text}", text)
}
