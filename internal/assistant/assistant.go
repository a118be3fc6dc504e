package assistant

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	// OfflineMessage is returned when no API key is configured. No
	// network call is made in that case.
	OfflineMessage = "Nexus is offline right now. The assistant needs an API key to come online — ping the CORE DEVS staff."

	// ErrorMessage is returned on any upstream failure: network, auth,
	// quota, or an empty response.
	ErrorMessage = "Nexus hit a connection error talking to its brain. Try again in a moment."

	defaultModel = "gemini-2.0-flash"

	systemPersona = "You are Nexus, the assistant on the CORE DEVS site. CORE DEVS builds " +
		"Discord bots. Answer questions about the bots, Discord bot development and the " +
		"developer vault. Keep replies short, friendly and concrete."

	requestTimeout = 30 * time.Second

	replyCacheTTL     = 5 * time.Minute
	replyCacheCleanup = 10 * time.Minute
)

// Assistant proxies prompts to the Gemini API. It never returns an
// error: every failure path degrades to a canned string so the chat
// widget always has something to show.
type Assistant struct {
	client *genai.Client
	model  string
	cache  *cache.Cache
	sugar  *zap.SugaredLogger
}

// New builds an Assistant. An empty apiKey yields an offline assistant
// that answers with OfflineMessage and never touches the network.
func New(ctx context.Context, apiKey, model string, sugar *zap.SugaredLogger) *Assistant {
	a := &Assistant{
		model: model,
		cache: cache.New(replyCacheTTL, replyCacheCleanup),
		sugar: sugar,
	}
	if a.model == "" {
		a.model = defaultModel
	}

	if apiKey == "" {
		sugar.Warn("no Gemini API key configured, assistant runs offline")
		return a
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		sugar.Errorw("failed to create Gemini client, assistant runs offline", "error", err)
		return a
	}
	a.client = client
	return a
}

// Online reports whether the assistant has an upstream to talk to.
func (a *Assistant) Online() bool { return a.client != nil }

// Respond answers a prompt. Identical prompts within the cache TTL are
// answered from cache without an upstream call.
func (a *Assistant) Respond(ctx context.Context, prompt string) string {
	if a.client == nil {
		return OfflineMessage
	}

	if cached, found := a.cache.Get(prompt); found {
		return cached.(string)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPersona, genai.RoleUser),
		},
	)
	if err != nil {
		a.sugar.Errorw("assistant upstream call failed", "error", err)
		return ErrorMessage
	}

	text := result.Text()
	if text == "" {
		a.sugar.Warn("assistant upstream returned no text")
		return ErrorMessage
	}

	a.cache.Set(prompt, text, replyCacheTTL)
	return text
}
