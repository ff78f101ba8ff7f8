package dto

// AssistantPreferenceRequest stores the learner's own provider credentials.
type AssistantPreferenceRequest struct {
	Provider string `json:"provider" validate:"required,oneof=openai gemini groq openrouter"`
	APIKey   string `json:"api_key" validate:"required,min=8,max=256"`
}

// AssistantPreferenceResponse never exposes the stored key.
type AssistantPreferenceResponse struct {
	Configured   bool   `json:"configured"`
	Provider     string `json:"provider,omitempty"`
	APIKeyMasked string `json:"api_key_masked,omitempty"`
}

// AssistantRequest asks the assistant about a piece of code.
type AssistantRequest struct {
	Language string `json:"language" validate:"omitempty,max=32"`
	Code     string `json:"code" validate:"required,max=65536"`
	Input    string `json:"input" validate:"max=65536"`
}

// AssistantResponse carries the generated text.
type AssistantResponse struct {
	Provider string `json:"provider"`
	Text     string `json:"text"`
}
