// Package generation provides the boundary between the application core and
// external AI/LLM services (Gemini) used to propose vocabulary. The Generator
// interface returns a topic together with a short batch of words; callers
// pass the topics or words they already have so the model avoids repeating them.
package generation
