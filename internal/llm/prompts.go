package llm

import "fmt"

// SuggestTagsPrompt builds the prompt for tag suggestion. The model is
// asked for plain comma-separated output; callers parse leniently.
func SuggestTagsPrompt(content string) string {
	return fmt.Sprintf(`Analyze the following text and suggest up to 3 relevant tags (single words).
Return ONLY the tags separated by commas, no hash signs, no extra text.

Text: %q`, content)
}

// SystemInstruction builds the chat system instruction with the user's
// recent memos embedded as grounding context. memoContext is the
// pre-formatted block of dated memo lines.
func SystemInstruction(memoContext string) string {
	return fmt.Sprintf(`You are a personal knowledge assistant embedded in a memo app.
You have access to the user's recent notes/memos provided below.
Answer the user's questions based on their notes.
If the answer isn't in the notes, use your general knowledge but mention that it wasn't found in the memos.
Keep answers concise and helpful.

User's Memos Context:
%s`, memoContext)
}
