package export

// LLM prompt templates, data only.

// summaryPrompt asks for a short professional summary.
// Args: current date, focus instruction, résumé Markdown.
const summaryPrompt = `You write concise professional summaries for engineering portfolios.

Current date: %s

Write a summary of 3-5 sentences in plain Markdown (no headings).
Use ONLY facts from the résumé below. Mention the strongest technologies with their durations as given.
Do not invent employers, titles, numbers or technologies.
%s

Résumé:
%s`
