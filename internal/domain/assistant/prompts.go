package assistant

import (
	"fmt"
	"strings"

	"github.com/svr1m/PawCare-App/internal/ports/inference"
)

const (
	DefaultChatModel     = "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free"
	DefaultTipsModel     = "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free"
	DefaultFAQsModel     = "mistralai/Mixtral-8x7B-Instruct-v0.1"
	DefaultTipsMaxTokens = 150
)

const chatSystemPrompt = "You are a helpful pet care assistant who only answers questions about dogs. " +
	"Politely refuse to answer any questions that are not related to dogs."

// BuildChatRequest: persona de sistema + el mensaje del usuario tal cual.
func BuildChatRequest(model, message string) inference.ChatRequest {
	return inference.ChatRequest{
		Model: model,
		Messages: []inference.Message{
			{Role: inference.RoleSystem, Content: chatSystemPrompt},
			{Role: inference.RoleUser, Content: message},
		},
	}
}

// BuildTipsRequest pide 4 tips sin numeración ni viñetas.
// maxTokens <= 0 usa DefaultTipsMaxTokens.
func BuildTipsRequest(model, breed string, maxTokens int) inference.ChatRequest {
	if maxTokens <= 0 {
		maxTokens = DefaultTipsMaxTokens
	}
	prompt := fmt.Sprintf(
		"Give 4 short and helpful pet care tips specifically for a %s in bullet points without numbering."+
			"(dont start with bullets or anything in any sentence/any tip)",
		breed,
	)
	return inference.ChatRequest{
		Model:     model,
		Messages:  []inference.Message{{Role: inference.RoleUser, Content: prompt}},
		MaxTokens: maxTokens,
	}
}

// El template embebido sesga al modelo hacia el formato que parsea ExtractFAQs.
var faqTemplate = strings.Repeat("- Question: ...\n  Answer: ...\n", 3)

// BuildFAQsRequest pide 3 preguntas frecuentes con respuesta corta.
func BuildFAQsRequest(model, breed string) inference.ChatRequest {
	prompt := fmt.Sprintf(
		"Give 3 frequently asked questions (with short helpful answers) about pet care specifically for a %s. "+
			"Return in format:\n%s",
		breed, faqTemplate,
	)
	return inference.ChatRequest{
		Model:    model,
		Messages: []inference.Message{{Role: inference.RoleUser, Content: prompt}},
	}
}
