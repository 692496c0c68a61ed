package aisvc

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/studyroom/backend/core"
)

var (
	// errors
	ErrRateLimited     = errors.New("Rate limit exceeded. Please try again later.")
	ErrPaymentRequired = errors.New("Payment required. Please add credits to your workspace.")
	ErrGateway         = errors.New("AI gateway error")
)

const errNoAPIKey = "AI gateway API key is not configured"

// Request holds the user's answers the schedule is generated from.
type Request struct {
	SleepTime   string `json:"sleepTime" validate:"required,clocktime"`
	WakeTime    string `json:"wakeTime" validate:"required,clocktime"`
	EnergyPeaks string `json:"energyPeaks" validate:"max=1000"`
	StudyGoals  string `json:"studyGoals" validate:"max=2000"`
}

func (r *Request) Validate(validate *validator.Validate) error {
	r.SleepTime = core.CleanString(r.SleepTime)
	r.WakeTime = core.CleanString(r.WakeTime)
	r.EnergyPeaks = core.CleanString(r.EnergyPeaks)
	r.StudyGoals = core.CleanString(r.StudyGoals)
	return validate.Struct(r)
}

// Generator produces schedule text.
type Generator interface {
	GenerateSchedule(ctx context.Context, req Request) (string, error)
}

type (
	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	chatRequest struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}

	chatResponse struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
)

// Client talks to an OpenAI-compatible chat completions gateway.
type Client struct {
	rest   *rest.Client
	conf   core.AIConfig
	logger core.Logger
}

var _ Generator = (*Client)(nil)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		rest:   &rest.Client{HTTPClient: &http.Client{Timeout: conf.AI.Timeout}},
		conf:   conf.AI,
		logger: logger,
	}
}

// GenerateSchedule asks the gateway for a schedule. Upstream 429 and 402 map to ErrRateLimited
// and ErrPaymentRequired; any other failure is ErrGateway. A missing key is a *core.ConfigError.
func (c *Client) GenerateSchedule(ctx context.Context, req Request) (string, error) {
	if c.conf.APIKey == "" {
		return "", core.NewConfigError(errNoAPIKey)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.conf.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(req)},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding chat request")
	}

	resp, err := c.rest.SendWithContext(ctx, rest.Request{
		Method:  rest.Post,
		BaseURL: c.conf.GatewayURL,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.conf.APIKey,
			"Content-Type":  "application/json",
		},
		Body: body,
	})
	if err != nil {
		c.logger.Error("calling AI gateway", err)
		return "", errors.Wrap(ErrGateway, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ErrPaymentRequired
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Error("AI gateway error", map[string]interface{}{"status": resp.StatusCode, "body": resp.Body})
		return "", ErrGateway
	}

	var out chatResponse
	if err = json.Unmarshal([]byte(resp.Body), &out); err != nil {
		c.logger.Error("decoding AI gateway response", err)
		return "", ErrGateway
	}
	if len(out.Choices) == 0 {
		c.logger.Error("AI gateway returned no choices", map[string]interface{}{"body": resp.Body})
		return "", ErrGateway
	}
	return out.Choices[0].Message.Content, nil
}
