package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"github.com/tablemate/waiterd/config"
	"github.com/tablemate/waiterd/tools"
	"github.com/tablemate/waiterd/utils"
)

const systemPrompt = `You are a friendly and helpful restaurant assistant chatbot.
Your role is to help customers with:
1. Browsing the menu and finding items that match their preferences
2. Answering questions about menu items, including allergen information
3. Taking orders for food and beverages
4. Managing orders (updating quantities, cancelling)
5. Providing receipts and processing payments
6. Answering frequently asked questions about the restaurant

You have access to comprehensive tools to:
- Get menu categories and view all available items
- Search the menu with advanced filters (food/drink type, categories, price range, ingredients, allergens, recommendations)
- Check allergen information for specific menu items
- Place orders for customers with special instructions
- Update order item quantities or cancel orders
- Generate receipts showing items and totals
- Process payments for orders
- Access FAQ information to answer common questions

Be polite, helpful, and informative. When customers ask about the menu, use the appropriate
tools to fetch real-time information. When they want to order, use the order placement tool.
Don't make up information about the menu, if something is absent or not specified, say so.
Always confirm orders with the customer and provide order IDs for reference.

When customers ask about pricing, dietary restrictions, or want recommendations, use the get_menu
tool with appropriate filters. For specific allergen questions, use the get_allergens tool.
For general questions about the restaurant, check the FAQ tools first.`

// Agent drives conversations with the model, executing tool calls through
// the dispatcher until the model answers in plain text.
type Agent struct {
	client   *anthropic.Client
	model    string
	tools    []anthropic.ToolUnionParam
	dispatch *tools.Dispatcher
	sessions *SessionStore
}

func New(cfg *config.Config, dispatcher *tools.Dispatcher) *Agent {
	client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
	return &Agent{
		client:   &client,
		model:    cfg.AnthropicModel,
		tools:    tools.Definitions(),
		dispatch: dispatcher,
		sessions: NewSessionStore(),
	}
}

// Query runs one conversation turn. A blank sessionID starts a fresh
// session; new sessions are seeded with the caller's order id and name so
// the model can fill in tool parameters without asking. Returns the
// session id alongside the reply.
func (a *Agent) Query(ctx context.Context, sessionID string, orderID uint, customer, userMessage string) (string, string, error) {
	if customer == "" {
		customer = "guest"
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	messages := a.sessions.History(sessionID)
	if len(messages) == 0 {
		contextMsg := fmt.Sprintf("My order_id is %d and my name is %s.", orderID, customer)
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(contextMsg)))
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage)))

	utils.InfoLogger.Printf("New user query (session %s): %s", sessionID, userMessage)

	for {
		resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(a.model),
			MaxTokens: 4096,
			System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
			Messages:  messages,
			Tools:     a.tools,
		})
		if err != nil {
			return sessionID, "", fmt.Errorf("anthropic request: %w", err)
		}

		if resp.StopReason == "tool_use" {
			messages = append(messages, resp.ToParam())

			var results []anthropic.ContentBlockParamUnion
			for _, block := range resp.Content {
				if block.Type != "tool_use" {
					continue
				}
				toolUse := block.AsToolUse()
				input, err := json.Marshal(toolUse.Input)
				if err != nil {
					return sessionID, "", fmt.Errorf("decode tool input: %w", err)
				}
				result := a.dispatch.Dispatch(toolUse.Name, input)
				results = append(results, anthropic.NewToolResultBlock(toolUse.ID, result, false))
			}
			messages = append(messages, anthropic.NewUserMessage(results...))
			continue
		}

		var reply strings.Builder
		for _, block := range resp.Content {
			if block.Type == "text" {
				reply.WriteString(block.AsText().Text)
			}
		}
		messages = append(messages, resp.ToParam())
		a.sessions.Replace(sessionID, messages)
		return sessionID, reply.String(), nil
	}
}
