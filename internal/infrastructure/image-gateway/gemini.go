package imagegateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/buildmatpro/proforma-service/config"
	"github.com/buildmatpro/proforma-service/pkg/errs"
	"github.com/buildmatpro/proforma-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// ImageEditGateway is the one external capability of the system: a single
// request/response image edit. Implementations never touch invoice state.
type ImageEditGateway interface {
	EditImage(ctx context.Context, image string, instruction string) (string, error)
}

const editPromptTemplate = `Act as a professional architectural visualization tool.
Modify this product image based on the following instruction: "%s".
Keep the main product recognizable but apply the requested context, style, or modification.
Return ONLY the image.`

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequestPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiRequestPart `json:"parts"`
	} `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type GeminiClient struct {
	config *config.Config
	cb     *gobreaker.CircuitBreaker[[]byte]
}

func CreateGeminiClient(config *config.Config, cb *gobreaker.CircuitBreaker[[]byte]) *GeminiClient {
	return &GeminiClient{
		config: config,
		cb:     cb,
	}
}

// EditImage sends the source image plus the instruction to the hosted model
// and returns the generated image as a base64 data URI. On any failure the
// caller's state is untouched; the error is one of the errs sentinels.
func (c *GeminiClient) EditImage(ctx context.Context, image string, instruction string) (string, error) {
	if c.config.GeminiConfig.APIKey == "" {
		log.Error().Str("component", "EditImage").Msg("missing image service credentials")
		return "", errs.ErrGatewayUnavailable
	}

	mimeType, data, err := decodeImagePayload(image)
	if err != nil {
		log.Error().Err(err).Str("component", "EditImage").Msg("")
		return "", errs.ErrClient
	}

	payload := geminiRequest{}
	payload.Contents = append(payload.Contents, struct {
		Parts []geminiRequestPart `json:"parts"`
	}{
		Parts: []geminiRequestPart{
			{Text: fmt.Sprintf(editPromptTemplate, instruction)},
			{InlineData: &geminiInlineData{MimeType: mimeType, Data: data}},
		},
	})

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshalling image edit request: %v", err)
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		statusCode, respBody, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
			URL:    fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.config.GeminiConfig.Host, c.config.GeminiConfig.Model),
			Method: "POST",
			Body:   jsonBody,
			Headers: map[string]string{
				"Content-Type":   "application/json",
				"x-goog-api-key": c.config.GeminiConfig.APIKey,
			},
		})
		if err != nil {
			return nil, err
		}

		if statusCode != http.StatusOK {
			return nil, fmt.Errorf("image service returned non-OK status: %d", statusCode)
		}

		return respBody, nil
	})
	if err != nil {
		log.Error().Err(err).Str("component", "EditImage").Msg("")
		return "", errs.ErrGatewayUnavailable
	}

	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Error().Err(err).Str("component", "EditImage").Msg("")
		return "", errs.ErrEmptyResult
	}

	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return fmt.Sprintf("data:image/jpeg;base64,%s", part.InlineData.Data), nil
			}
		}
	}

	return "", errs.ErrEmptyResult
}

// decodeImagePayload splits a base64 data URI into its mime type and payload.
// Plain URLs are fetched and encoded so catalog images can be edited directly.
func decodeImagePayload(image string) (mimeType string, data string, err error) {
	if strings.HasPrefix(image, "data:") {
		rest := strings.TrimPrefix(image, "data:")
		parts := strings.SplitN(rest, ";base64,", 2)
		if len(parts) != 2 {
			return "", "", fmt.Errorf("malformed image data URI")
		}
		return parts[0], parts[1], nil
	}

	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		statusCode, body, err := httpclient.SendRequest(context.Background(), httpclient.HttpRequest{
			URL:    image,
			Method: "GET",
		})
		if err != nil {
			return "", "", fmt.Errorf("error fetching source image: %v", err)
		}
		if statusCode != http.StatusOK {
			return "", "", fmt.Errorf("source image fetch returned non-OK status: %d", statusCode)
		}

		mimeType := http.DetectContentType(body)
		return mimeType, base64.StdEncoding.EncodeToString(body), nil
	}

	return "", "", fmt.Errorf("unsupported image reference")
}
