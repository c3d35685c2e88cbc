package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/text/language"

	"github.com/aishort/showcase-server/internal/domain"
	"github.com/aishort/showcase-server/internal/service"
	"github.com/aishort/showcase-server/internal/showcase"
)

func (s *Server) registerPromptRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPrompts",
		Method:      http.MethodGet,
		Path:        "/api/v1/prompts",
		Summary:     "List prompts",
		Description: "Renders the showcase for the filter state encoded in the query",
		Tags:        []string{"Prompts"},
		Security:    bearerSecurity,
	}, s.handleListPrompts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPrompt",
		Method:      http.MethodGet,
		Path:        "/api/v1/prompts/{id}",
		Summary:     "Get prompt",
		Description: "Returns a single prompt card",
		Tags:        []string{"Prompts"},
		Security:    bearerSecurity,
	}, s.handleGetPrompt)

	huma.Register(s.api, huma.Operation{
		OperationID: "copyPrompt",
		Method:      http.MethodPost,
		Path:        "/api/v1/prompts/{id}/copy",
		Summary:     "Record a copy",
		Description: "Increments the prompt's copy counter and returns the new value",
		Tags:        []string{"Prompts"},
		Middlewares: huma.Middlewares{s.rateLimit(s.copyLimiter)},
	}, s.handleCopyPrompt)
}

// LocaleParams select the display language of rendered cards.
type LocaleParams struct {
	Locale         string `query:"locale" doc:"UI locale such as zh-Hans or en; falls back to Accept-Language"`
	English        bool   `query:"english" doc:"Show the English content regardless of locale"`
	AcceptLanguage string `header:"Accept-Language"`
}

// resolve returns the explicit locale or the first supported Accept-Language entry.
func (p LocaleParams) resolve() string {
	if p.Locale != "" || p.AcceptLanguage == "" {
		return p.Locale
	}

	tags, _, err := language.ParseAcceptLanguage(p.AcceptLanguage)
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		base, _ := tag.Base()
		if l, ok := domain.ParseLocale(base.String()); ok {
			return string(l)
		}
	}
	return ""
}

// ListPromptsInput mirrors the page URL. Tags may repeat or be comma separated.
type ListPromptsInput struct {
	LocaleParams
	Tags     []string `query:"tags,explode" doc:"Selected tag ids"`
	Operator string   `query:"operator" doc:"AND or OR; anything else is OR"`
	Name     string   `query:"name" doc:"Search term; ignored while tags are selected"`
	Expanded bool     `query:"expanded" doc:"Show every entry instead of the first page"`

	query url.Values
}

// Resolve keeps the raw query so the URL codec sees it exactly as sent.
func (i *ListPromptsInput) Resolve(ctx huma.Context) []error {
	u := ctx.URL()
	i.query = u.Query()
	return nil
}

// PromptListOutput wraps the rendered showcase for Huma.
type PromptListOutput struct {
	Body showcase.View
}

func (s *Server) handleListPrompts(ctx context.Context, input *ListPromptsInput) (*PromptListOutput, error) {
	view := s.services.Showcase.Render(ctx, service.RenderRequest{
		Query:    input.query,
		User:     userFromContext(ctx),
		Locale:   input.resolve(),
		English:  input.English,
		Expanded: input.Expanded,
	})
	return &PromptListOutput{Body: view}, nil
}

// GetPromptInput selects one prompt.
type GetPromptInput struct {
	LocaleParams
	ID int `path:"id" minimum:"1" doc:"Prompt ID"`
}

// PromptOutput wraps a prompt card for Huma.
type PromptOutput struct {
	Body showcase.Card
}

func (s *Server) handleGetPrompt(ctx context.Context, input *GetPromptInput) (*PromptOutput, error) {
	card, err := s.services.Showcase.Entry(ctx, input.ID, userFromContext(ctx), input.resolve(), input.English)
	if err != nil {
		return nil, err
	}
	return &PromptOutput{Body: card}, nil
}

// CopyPromptInput identifies the copied prompt.
type CopyPromptInput struct {
	ID int `path:"id" minimum:"1" doc:"Prompt ID"`
}

// CopyResponse is the counter after a copy.
type CopyResponse struct {
	ID    int `json:"id" doc:"Prompt ID"`
	Count int `json:"count" doc:"Copy count after this copy"`
}

// CopyOutput wraps the copy response for Huma.
type CopyOutput struct {
	Body CopyResponse
}

func (s *Server) handleCopyPrompt(ctx context.Context, input *CopyPromptInput) (*CopyOutput, error) {
	n, err := s.services.CopyCounts.RecordCopy(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CopyOutput{Body: CopyResponse{ID: input.ID, Count: n}}, nil
}
