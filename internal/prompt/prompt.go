package prompt

import (
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"gopkg.in/yaml.v3"

	"menuchat-backend/internal/menu"
	"menuchat-backend/internal/store"
)

// Spec is the YAML-configurable grounding prompt: a persona line (with a
// {restaurant} placeholder) and the behavioral rules appended after it.
type Spec struct {
	System string   `yaml:"system"`
	Rules  []string `yaml:"rules"`
}

const defaultSpecYAML = `system: You are a helpful restaurant assistant for {restaurant}.
rules:
  - For general questions about the menu (e.g., "What's on the menu?"), give short, friendly, conversational summaries without listing ingredients or allergens for every item.
  - For specific questions about a menu item (e.g., "What's in the Grilled Salmon?" or "Any allergens in the Caesar Salad?"), provide full details including ingredients, allergens, and dietary notes.
  - Only reference menu items from this menu JSON; do NOT invent items.
  - Track which menu item each user question refers to. If not specified, assume the last-mentioned dish.
  - Follow clarifications from the user (e.g., "I meant the salad") to apply to the context of the previous question.
  - Answers should be concise, clear, and conversational.
`

type Builder struct {
	spec Spec
}

// Default returns a Builder using the built-in grounding spec.
func Default() *Builder {
	return &Builder{spec: mustParse(defaultSpecYAML)}
}

// Load reads a grounding spec from a YAML file.
func Load(path string) (*Builder, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec Spec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("parse prompt spec %s: %w", path, err)
	}
	if strings.TrimSpace(spec.System) == "" {
		return nil, fmt.Errorf("prompt spec %s: system line is empty", path)
	}
	return &Builder{spec: spec}, nil
}

// Build composes the message list for one chat turn: exactly one leading
// system message grounding the model in the menu document, then every prior
// turn in order, then the new user message.
func (p *Builder) Build(doc *menu.Document, history []store.Message, userMessage string) []openai.ChatCompletionMessage {
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(p.spec.System, "{restaurant}", doc.RestaurantName))
	b.WriteString("\nRules:\n")
	for i, rule := range p.spec.Rules {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rule)
	}
	b.WriteString("\nMenu data: ")
	b.WriteString(doc.ItemsJSON())

	out := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: b.String()})
	for _, m := range history {
		role := m.Role
		if role == "" {
			role = openai.ChatMessageRoleUser
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userMessage})
	return out
}

func mustParse(raw string) Spec {
	var spec Spec
	if err := yaml.Unmarshal([]byte(raw), &spec); err != nil {
		panic("prompt: bad default spec: " + err.Error())
	}
	return spec
}
