package ai

import "strings"

// ExplainPrompt asks for a walkthrough of code written in language.
func ExplainPrompt(language, code string) string {
	builder := strings.Builder{}
	builder.WriteString("Explain what the following ")
	builder.WriteString(language)
	builder.WriteString(" code does, rule by rule, for a beginner.\n\n```")
	builder.WriteString(strings.ToLower(language))
	builder.WriteString("\n")
	builder.WriteString(code)
	builder.WriteString("\n```")
	return builder.String()
}

// SimulatePrompt asks the model to describe the outcome of running code
// against input, which for stylesheets is the markup being styled.
func SimulatePrompt(language, code, input string) string {
	builder := strings.Builder{}
	builder.WriteString("Describe the result of applying the following ")
	builder.WriteString(language)
	builder.WriteString(" code.\n\n```")
	builder.WriteString(strings.ToLower(language))
	builder.WriteString("\n")
	builder.WriteString(code)
	builder.WriteString("\n```")
	if strings.TrimSpace(input) != "" {
		builder.WriteString("\n\n## Input\n```\n")
		builder.WriteString(input)
		builder.WriteString("\n```")
	}
	builder.WriteString("\nDescribe what the learner would see. Do not rewrite the code.")
	return builder.String()
}
