package generator

import "fmt"

const systemPrompt = "You are an educational AI assistant that creates detailed, pedagogically sound lesson plans. Always respond with valid JSON only."

const promptTemplate = `You are an expert educational consultant specializing in integrating AI ethically into lesson plans.

Create a comprehensive lesson plan with the following details:
- Subject: %[1]s
- Grade Level: %[2]s
- Learning Objective: %[3]s

Your response must be a valid JSON object with this exact structure:
{
  "title": "Brief descriptive title",
  "subject": "%[1]s",
  "gradeLevel": "%[2]s",
  "learningObjective": "%[3]s",
  "aiIntegration": {
    "approach": "One-sentence summary of AI integration approach",
    "description": "Detailed description of how AI will be used",
    "rationale": [
      "Reason 1 referencing Bloom's Taxonomy or Kirkpatrick's Model",
      "Reason 2 about learning outcomes",
      "Reason 3 about critical thinking",
      "Reason 4 about real-world preparation"
    ],
    "ethicalConsiderations": [
      "Transparency consideration",
      "Verification consideration",
      "Original thinking consideration",
      "Equity consideration"
    ]
  },
  "activities": [
    {
      "phase": "Phase name with duration",
      "activity": "Description of activity",
      "studentRole": "What students do",
      "teacherRole": "What teacher does"
    }
  ],
  "assessmentStrategy": "Description of how learning will be assessed using Kirkpatrick's model",
  "pedagogicalFrameworks": [
    "Framework 1 explanation",
    "Framework 2 explanation"
  ],
  "toolSuggestions": [
    "Tool 1 with purpose",
    "Tool 2 with purpose"
  ]
}

IMPORTANT: Return ONLY the JSON object, no additional text or markdown formatting.`

// buildPrompt embeds the request fields into the fixed instruction text.
func buildPrompt(subject, gradeLevel, learningObjective string) string {
	return fmt.Sprintf(promptTemplate, subject, gradeLevel, learningObjective)
}
