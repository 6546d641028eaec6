package prompts

const structureInstructions = `You are analyzing an educational document that has been converted to markdown.

Identify every assessment question in the document, in the order it appears. Questions that share introductory material (a passage, a scenario, a data table description, or other shared context) belong to the same group, with that introductory material as the group's precursor. A question with no shared context forms its own group with a null precursor.

When grouping:
- Preserve the original document order of groups and of questions within a group
- Reproduce question and precursor text exactly as written, without renumbering or rewording
- Treat sub-questions (a, b, c) of a numbered question as separate questions in the same group
- Ignore non-assessment content such as headers, footers, instructions to print, and answer keys`

const structureSpec = `Respond with a JSON object matching this exact structure:

{
  "groups": [
    {
      "precursor": "<shared context text or null>",
      "questions": ["<question text>", "<question text>"]
    }
  ]
}

Field constraints:
- precursor: The shared context text that precedes the group's questions,
  exactly as it appears in the document. Use null when the group has no
  shared context.
- questions: Ordered array of the group's question texts, exactly as they
  appear in the document. Never empty.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- If the document contains no questions, respond with {"groups": []}`

// Preservation guidance differs by item kind: precursors carry shared
// context the questions depend on, questions carry the assessment itself.
const (
	precursorPreserveNote = "Keep all critical information intact. Preserve the core meaning and context."
	questionPreserveNote  = "Preserve the core meaning and educational value."
)
