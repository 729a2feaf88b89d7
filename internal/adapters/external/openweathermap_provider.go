package external

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

const (
	defaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"
	openWeatherMapName       = "openweathermap"
)

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
	Logger  ports.Logger
}

// owmCity is one entry of the current weather and group endpoints
type owmCity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Dt    int64  `json:"dt"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

type owmGroupResponse struct {
	Count int       `json:"cnt"`
	List  []owmCity `json:"list"`
}

var errUnexpectedStatus = stderrors.New("unexpected status code")

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapURL
	}

	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        openWeatherMapName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		client:  client,
		breaker: breaker,
		logger:  params.Logger,
	}
}

// GetCityList fetches current weather for the given city IDs in one group request
func (p *OpenWeatherMapProviderAdapter) GetCityList(ctx context.Context, cityIDs []int64) ([]ports.CityWeather, error) {
	if len(cityIDs) == 0 {
		return nil, errors.NewValidationError("city list cannot be empty")
	}

	ids := make([]string, 0, len(cityIDs))
	for _, id := range cityIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	query := url.Values{}
	query.Set("id", strings.Join(ids, ","))

	var resp owmGroupResponse
	if err := p.get(ctx, "/group", query, &resp); err != nil {
		return nil, err
	}

	items := make([]ports.CityWeather, 0, len(resp.List))
	for _, city := range resp.List {
		items = append(items, city.toPorts())
	}
	return items, nil
}

// GetByCoordinates fetches current weather for a position
func (p *OpenWeatherMapProviderAdapter) GetByCoordinates(ctx context.Context, lat, lon float64) (*ports.CityWeather, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var resp owmCity
	if err := p.get(ctx, "/weather", query, &resp); err != nil {
		return nil, err
	}

	item := resp.toPorts()
	return &item, nil
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return openWeatherMapName
}

func (p *OpenWeatherMapProviderAdapter) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if p.apiKey == "" {
		return errors.NewConfigurationError("OpenWeatherMap API key not configured", nil)
	}

	query.Set("appid", p.apiKey)
	query.Set("units", "metric")
	endpoint := p.baseURL + path + "?" + query.Encode()

	result, err := p.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() {
			if closeErr := resp.Body.Close(); closeErr != nil {
				p.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
			}
		}()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
		}

		var body json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return body, nil
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return errors.NewExternalAPIError("OpenWeatherMap circuit open", err)
		}
		return errors.NewExternalAPIError("failed to call OpenWeatherMap", err)
	}

	if err := json.Unmarshal(result.(json.RawMessage), out); err != nil {
		return errors.NewExternalAPIError("failed to decode OpenWeatherMap response", err)
	}
	return nil
}

func (c owmCity) toPorts() ports.CityWeather {
	item := ports.CityWeather{
		ID:        c.ID,
		Name:      c.Name,
		Temp:      c.Main.Temp,
		Humidity:  c.Main.Humidity,
		Latitude:  c.Coord.Lat,
		Longitude: c.Coord.Lon,
		Timestamp: time.Unix(c.Dt, 0).UTC(),
	}
	if len(c.Weather) > 0 {
		item.Description = c.Weather[0].Description
		item.Icon = c.Weather[0].Icon
	}
	return item
}

// CircuitState reports the breaker state: closed, half-open or open
func (p *OpenWeatherMapProviderAdapter) CircuitState() string {
	return p.breaker.State().String()
}
