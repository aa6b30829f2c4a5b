// Package gemini implements generation.Generator with Google's Gemini API
// through the google.golang.org/genai SDK.
//
// Prompts are text templates embedded in the binary. Every call requests a
// JSON response, retries transient failures with exponential backoff and
// jitter, and maps blocked or malformed answers to the generation error family.
package gemini
