// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package assistant is the gateway to the generative-language service and the
chat transcript kept per app session.

# Gateway

	g := assistant.NewGateway(assistant.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.AITimeout,
	})

	reply := g.ChatReply(ctx, "How do I vote from abroad?")
	report := g.IntegrityReport(ctx, results.Chart(candidates))

Both calls are a single POST to

	{BaseURL}/v1beta/models/{Model}:generateContent

with the key in the x-goog-api-key header. There is no retry.

# Fallbacks

Neither call returns an error. Without a key the gateway answers with
OfflineChatReply / OfflineIntegrityReport. An empty answer maps to
EmptyChatReply / EmptyIntegrityReport, and any transport or HTTP failure to
FailedChatReply / FailedIntegrityReport.

# Conversation

	c := assistant.NewConversation(time.Now) // starts with Greeting
	c.Append(models.RoleUser, "Habari")
	msgs := c.Messages()

Transcripts are append-only and live only as long as the app session.
*/
package assistant
