package task

import (
	_ "embed"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const (
	WeatherProvider = "weather"
	SearchProvider  = "brave"

	weatherKeySetting = "openweathermap_api_key"
	searchKeySetting  = "api_key"
)

//go:embed templates/foodie_tour.yaml
var foodieTourTemplate []byte

// Credentials are the integration keys injected into the workflow tools.
type Credentials struct {
	OpenWeatherMapAPIKey string `validate:"required"`
	BraveAPIKey          string `validate:"required"`
}

// Renderer turns the embedded workflow template into a Definition carrying
// the caller's credentials. Keys are assigned to typed fields, so their
// content is never interpreted as template syntax.
type Renderer struct {
	source    []byte
	validator *validator.Validate
}

func NewRenderer() *Renderer {
	return NewRendererFromSource(foodieTourTemplate)
}

// NewRendererFromSource builds a renderer for an arbitrary workflow document.
func NewRendererFromSource(source []byte) *Renderer {
	return &Renderer{
		source:    source,
		validator: validator.New(),
	}
}

// Render parses a fresh copy of the template and sets the integration keys.
func (r *Renderer) Render(creds Credentials) (*Definition, error) {
	if err := r.validator.Struct(creds); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}
	def, err := r.parse()
	if err != nil {
		return nil, err
	}
	if err := setIntegrationKey(def, WeatherProvider, weatherKeySetting, creds.OpenWeatherMapAPIKey); err != nil {
		return nil, err
	}
	if err := setIntegrationKey(def, SearchProvider, searchKeySetting, creds.BraveAPIKey); err != nil {
		return nil, err
	}
	return def, nil
}

func (r *Renderer) parse() (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(r.source, &def); err != nil {
		return nil, fmt.Errorf("parse workflow template: %w", err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("workflow template has no name")
	}
	if len(def.Main) == 0 {
		return nil, fmt.Errorf("workflow template %s has no steps", def.Name)
	}
	return &def, nil
}

func setIntegrationKey(def *Definition, provider, setting, value string) error {
	tool, ok := def.ToolByProvider(provider)
	if !ok {
		return fmt.Errorf("workflow template %s has no %s integration tool", def.Name, provider)
	}
	if tool.Integration.Setup == nil {
		tool.Integration.Setup = make(map[string]string, 1)
	}
	tool.Integration.Setup[setting] = value
	return nil
}
