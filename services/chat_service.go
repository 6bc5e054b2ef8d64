package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	config "github.com/ardiansyahnr/edu_platform/configs"
)

const (
	openRouterURL    = "https://openrouter.ai/api/v1/chat/completions"
	chatModel        = "deepseek/deepseek-chat-v3-0324:free"
	chatSystemPrompt = "You are an educational assistant."
)

var ErrChatNotConfigured = errors.New("chat service is not configured")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// RequestChatCompletion proxies a single prompt to OpenRouter and returns the
// assistant reply. One outbound call, no retry; failures surface to the caller.
func RequestChatCompletion(prompt string) (string, error) {
	apiKey := config.Config("OPENROUTER_API_KEY")
	if apiKey == "" {
		return "", ErrChatNotConfigured
	}

	payload := chatCompletionRequest{
		Model: chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest("POST", openRouterURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach chat provider: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("OpenRouter API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("chat provider returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &completion); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %v", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat provider returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
