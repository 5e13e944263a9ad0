package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const promptTemplate = `For the country %q, provide the following information as a single JSON object:

1. The official currency name and its ISO 4217 code (exactly 3 letters).
2. The major stock exchanges, each with its full name, its primary market index ticker symbol, and the street address of its headquarters.

Respond with ONLY the JSON object, using exactly this structure:
{
  "currency": {"name": "Currency Name", "code": "ISO"},
  "exchanges": [
    {"name": "Exchange Name", "index_symbol": "Symbol", "address": "Full street address"}
  ]
}

If the country has no stock exchange, use an empty "exchanges" array. Provide accurate and up-to-date information.`

// rawReplyLimit caps how much of the model reply is carried inside parse errors.
const rawReplyLimit = 512

var fencePattern = regexp.MustCompile("(?s)^\\s*```(?:json|JSON)?\\s*\\n?(.*?)\\n?\\s*```\\s*$")

// Requester asks the generative model for a country's finance metadata and
// decodes the reply into a validated CountryFinanceProfile.
type Requester struct {
	gen      TextGenerator
	validate *validator.Validate
	log      *zap.SugaredLogger
}

// NewRequester creates a Requester backed by the given text generator.
func NewRequester(gen TextGenerator, log *zap.SugaredLogger) *Requester {
	return &Requester{
		gen:      gen,
		validate: validator.New(),
		log:      log,
	}
}

// wire shape of the model reply
type profileReply struct {
	Currency struct {
		Name string `json:"name"`
		Code string `json:"code"`
	} `json:"currency"`
	Exchanges []struct {
		Name        string `json:"name"`
		IndexSymbol string `json:"index_symbol"`
		Address     string `json:"address"`
	} `json:"exchanges"`
}

// RequestProfile issues one completion request for the country and parses the
// reply. It returns ErrUpstreamModel when the service is unreachable or the
// reply is not parseable, and ErrValidation when required fields are missing.
// No retry: a failed attempt propagates to the caller.
func (r *Requester) RequestProfile(ctx context.Context, countryName string) (*CountryFinanceProfile, error) {
	countryName = strings.TrimSpace(countryName)
	if countryName == "" {
		return nil, fmt.Errorf("%w: country name is empty", ErrValidation)
	}

	prompt := fmt.Sprintf(promptTemplate, countryName)
	reply, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamModel, err)
	}

	profile, err := r.parseReply(reply)
	if err != nil {
		return nil, err
	}

	r.log.Infow("Parsed country profile",
		"country", countryName,
		"currency_code", profile.CurrencyCode,
		"exchanges", len(profile.Exchanges),
	)
	return profile, nil
}

func (r *Requester) parseReply(reply string) (*CountryFinanceProfile, error) {
	cleaned := cleanMarkdownFences(reply)

	var wire profileReply
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, fmt.Errorf("%w: decode model reply: %v (raw: %s)", ErrUpstreamModel, err, truncate(reply, rawReplyLimit))
	}

	profile := &CountryFinanceProfile{
		CurrencyName: strings.TrimSpace(wire.Currency.Name),
		CurrencyCode: NormalizeCurrencyCode(wire.Currency.Code),
		Exchanges:    make([]ExchangeInfo, 0, len(wire.Exchanges)),
	}
	for _, ex := range wire.Exchanges {
		profile.Exchanges = append(profile.Exchanges, ExchangeInfo{
			Name:        strings.TrimSpace(ex.Name),
			IndexSymbol: strings.TrimSpace(ex.IndexSymbol),
			Address:     strings.TrimSpace(ex.Address),
		})
	}

	if err := r.validate.Struct(profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return profile, nil
}

// cleanMarkdownFences strips a surrounding markdown code fence from the reply.
func cleanMarkdownFences(s string) string {
	s = strings.TrimSpace(s)

	if matches := fencePattern.FindStringSubmatch(s); len(matches) > 1 {
		s = matches[1]
	}

	// Fallback: simple prefix/suffix trimming
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
