package llm

// modelPricing holds per-model pricing in USD per 1M tokens.
type modelPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// priceTable covers the models the quality presets can select. Ollama
// models are local and free, so they are simply absent and estimate to
// zero.
var priceTable = map[string]modelPricing{
	// Anthropic models
	"claude-sonnet-4-5-20250929": {InputPerMillion: 3.00, OutputPerMillion: 15.00},
	"claude-haiku-4-5-20251001":  {InputPerMillion: 0.80, OutputPerMillion: 4.00},
	"claude-opus-4-1-20250805":   {InputPerMillion: 15.00, OutputPerMillion: 75.00},

	// OpenAI models
	"gpt-4o":      {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"gpt-4o-mini": {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"gpt-4":       {InputPerMillion: 30.00, OutputPerMillion: 60.00},

	// OpenRouter model ids
	"anthropic/claude-sonnet-4-5": {InputPerMillion: 3.00, OutputPerMillion: 15.00},
	"anthropic/claude-opus-4-1":   {InputPerMillion: 15.00, OutputPerMillion: 75.00},
	"openai/gpt-4o":               {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"openai/gpt-4o-mini":          {InputPerMillion: 0.15, OutputPerMillion: 0.60},
}

// EstimateCost returns the estimated cost in USD for the given model and
// token counts. Unknown models estimate to 0.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	pricing, ok := priceTable[model]
	if !ok {
		return 0
	}

	inputCost := float64(inputTokens) / 1_000_000.0 * pricing.InputPerMillion
	outputCost := float64(outputTokens) / 1_000_000.0 * pricing.OutputPerMillion
	return inputCost + outputCost
}

// EstimateTokens roughly sizes a prompt before it is sent, at the usual 1
// token per 4 characters. Deck HTML tokenizes denser than prose, so treat
// the result as a floor.
func EstimateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		return 1
	}
	return n
}
