package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"unicode"

	"gensuite-api/internal/adapters/persistence/repositories"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Limits for a single user-agent generation request
const (
	DefaultUserAgentCount = 5
	MaxUserAgentCount     = 50
)

// GeneratorService implements the generator utility tools
type GeneratorService struct {
	uaRepo  repositories.UserAgentTemplateRepository
	textgen *TextGenService
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(uaRepo repositories.UserAgentTemplateRepository, textgen *TextGenService) *GeneratorService {
	return &GeneratorService{
		uaRepo:  uaRepo,
		textgen: textgen,
	}
}

// GenerateUserAgents produces count realistic user-agent strings from the
// seeded browser templates.
func (s *GeneratorService) GenerateUserAgents(ctx context.Context, count int) ([]string, error) {
	if count < 1 {
		count = DefaultUserAgentCount
	}
	if count > MaxUserAgentCount {
		count = MaxUserAgentCount
	}

	templates, err := s.uaRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no user-agent templates seeded")
	}

	agents := make([]string, 0, count)
	for i := 0; i < count; i++ {
		tmpl := templates[rand.Intn(len(templates))]
		platforms := strings.Split(tmpl.Platforms, "|")
		platform := platforms[rand.Intn(len(platforms))]

		major := tmpl.MinMajor
		if tmpl.MaxMajor > tmpl.MinMajor {
			major += rand.Intn(tmpl.MaxMajor - tmpl.MinMajor + 1)
		}

		// Templates carry the version verb once or twice (Firefox and Edge
		// repeat it).
		switch strings.Count(tmpl.Template, "%d") {
		case 2:
			agents = append(agents, fmt.Sprintf(tmpl.Template, platform, major, major))
		default:
			agents = append(agents, fmt.Sprintf(tmpl.Template, platform, major))
		}
	}

	return agents, nil
}

// EmailToNameInput represents email-to-name input
type EmailToNameInput struct {
	Email string `json:"email"`
}

// Validate validates email-to-name input
func (i EmailToNameInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email),
	)
}

// EmailToName expands an email address into a likely display name. Uses the
// generative-text API when configured, otherwise a deterministic local
// expansion of the address local part.
func (s *GeneratorService) EmailToName(ctx context.Context, input *EmailToNameInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	local := input.Email[:strings.Index(input.Email, "@")]

	if s.textgen != nil && s.textgen.Enabled() {
		name, err := s.textgen.Complete(ctx,
			"You expand email local parts into likely human display names. Reply with the name only.",
			local,
		)
		if err == nil && name != "" {
			return name, nil
		}
		log.Printf("⚠️ Text generation fallback for %s: %v", input.Email, err)
	}

	return expandLocalPart(local), nil
}

// expandLocalPart turns "john.doe_91" into "John Doe"
func expandLocalPart(local string) string {
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	words := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimFunc(p, unicode.IsDigit)
		if p == "" {
			continue
		}
		runes := []rune(strings.ToLower(p))
		runes[0] = unicode.ToUpper(runes[0])
		words = append(words, string(runes))
	}

	if len(words) == 0 {
		return "Unknown"
	}
	return strings.Join(words, " ")
}
