package soccerapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/kaisarfc/club-backend/internal/platform/logging"
	"github.com/kaisarfc/club-backend/internal/platform/resilience"
	"github.com/kaisarfc/club-backend/internal/usecase"
)

const (
	defaultBaseURL      = "https://api.soccerdata.example/v1"
	defaultGamePageSize = 50
	maxResponseBytes    = 6 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`apikey=[^&\s"']+`)
var errProviderTransient = crerr.New("soccer api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	GamePageSize   int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the soccer data provider. It implements
// usecase.UpstreamProvider: bounded per-request retries with linear backoff,
// a circuit breaker over transient failures, and singleflight so concurrent
// identical requests share one round trip.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	gamePageSize   int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	pageSize := cfg.GamePageSize
	if pageSize <= 0 {
		pageSize = defaultGamePageSize
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     max(cfg.MaxRetries, 0),
		gamePageSize:   pageSize,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchScoreTable(ctx context.Context, seasonID int64) ([]usecase.ExternalStanding, error) {
	if seasonID <= 0 {
		return nil, fmt.Errorf("season id must be greater than zero")
	}

	var envelope scoreTableEnvelope
	query := map[string]string{"season_id": strconv.FormatInt(seasonID, 10)}
	if err := c.doJSON(ctx, "/scoretable", query, &envelope); err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalStanding, 0, len(envelope.Data))
	for _, row := range envelope.Data {
		out = append(out, usecase.ExternalStanding{
			TeamID:   row.TeamID,
			TeamName: strings.TrimSpace(row.TeamName),
			LogoURL:  strings.TrimSpace(row.LogoURL),
			Played:   row.Played,
			Won:      row.Won,
			Drawn:    row.Drawn,
			Lost:     row.Lost,
			Goals:    strings.TrimSpace(row.Goals),
			Points:   row.Points,
		})
	}
	return out, nil
}

func (c *Client) Games(seasonID, teamID int64) usecase.GamesSource {
	return &gamesPager{client: c, seasonID: seasonID, teamID: teamID, limit: c.gamePageSize}
}

type gamesPager struct {
	client   *Client
	seasonID int64
	teamID   int64
	limit    int
	offset   int
	done     bool
}

func (p *gamesPager) Next(ctx context.Context) ([]usecase.ExternalMatch, bool, error) {
	if p.done {
		return nil, false, nil
	}
	if p.seasonID <= 0 {
		return nil, false, fmt.Errorf("season id must be greater than zero")
	}

	query := map[string]string{
		"season_id": strconv.FormatInt(p.seasonID, 10),
		"limit":     strconv.Itoa(p.limit),
		"offset":    strconv.Itoa(p.offset),
	}
	if p.teamID > 0 {
		query["team_id"] = strconv.FormatInt(p.teamID, 10)
	}

	var envelope gamesEnvelope
	if err := p.client.doJSON(ctx, "/games", query, &envelope); err != nil {
		return nil, false, err
	}

	items := make([]usecase.ExternalMatch, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		items = append(items, mapGameItem(item))
	}

	p.offset += len(envelope.Data)
	if len(envelope.Data) < p.limit || (envelope.Meta.Total > 0 && p.offset >= envelope.Meta.Total) {
		p.done = true
	}
	return items, !p.done, nil
}

func (c *Client) FetchGameDetails(ctx context.Context, gameID int64) (usecase.ExternalMatch, error) {
	if gameID <= 0 {
		return usecase.ExternalMatch{}, fmt.Errorf("game id must be greater than zero")
	}

	var envelope gameEnvelope
	path := "/games/" + strconv.FormatInt(gameID, 10)
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return usecase.ExternalMatch{}, err
	}
	return mapGameItem(envelope.Data), nil
}

func (c *Client) FetchTeamPlayers(ctx context.Context, teamID, seasonID int64) ([]usecase.ExternalPlayer, error) {
	if teamID <= 0 || seasonID <= 0 {
		return nil, fmt.Errorf("team id and season id must be greater than zero")
	}

	var envelope playersEnvelope
	query := map[string]string{
		"team_id":   strconv.FormatInt(teamID, 10),
		"season_id": strconv.FormatInt(seasonID, 10),
	}
	if err := c.doJSON(ctx, "/players", query, &envelope); err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalPlayer, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		out = append(out, usecase.ExternalPlayer{
			ID:            item.ID,
			TeamID:        item.TeamID,
			FirstName:     strings.TrimSpace(item.FirstName),
			LastName:      strings.TrimSpace(item.LastName),
			Number:        item.Number,
			Position:      strings.TrimSpace(item.Position),
			Nationality:   strings.TrimSpace(item.Nationality),
			BirthDate:     strings.TrimSpace(item.BirthDate),
			HeightCM:      item.HeightCM,
			WeightKG:      item.WeightKG,
			PhotoFilename: strings.TrimSpace(item.Photo),
			PhotoURL:      strings.TrimSpace(item.PhotoURL),
			Stats: usecase.ExternalPlayerStats{
				SeasonID:    item.Stats.SeasonID,
				Matches:     item.Stats.Matches,
				Goals:       item.Stats.Goals,
				Assists:     item.Stats.Assists,
				YellowCards: item.Stats.YellowCards,
				RedCards:    item.Stats.RedCards,
				Minutes:     item.Stats.Minutes,
			},
		})
	}
	return out, nil
}

func (c *Client) FetchTeamStats(ctx context.Context, teamID, seasonID int64) (usecase.ExternalTeamStats, error) {
	if teamID <= 0 || seasonID <= 0 {
		return usecase.ExternalTeamStats{}, fmt.Errorf("team id and season id must be greater than zero")
	}

	var envelope teamStatsEnvelope
	path := "/teams/" + strconv.FormatInt(teamID, 10) + "/stats"
	query := map[string]string{"season_id": strconv.FormatInt(seasonID, 10)}
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return usecase.ExternalTeamStats{}, err
	}

	item := envelope.Data
	return usecase.ExternalTeamStats{
		TeamID:        item.TeamID,
		SeasonID:      item.SeasonID,
		Matches:       item.Matches,
		Wins:          item.Wins,
		Draws:         item.Draws,
		Losses:        item.Losses,
		Goals:         strings.TrimSpace(item.Goals),
		CleanSheets:   item.CleanSheets,
		YellowCards:   item.YellowCards,
		RedCards:      item.RedCards,
		Shots:         item.Shots,
		ShotsOnTarget: item.ShotsOnTarget,
		PossessionPct: item.PossessionPct,
	}, nil
}

func mapGameItem(item gameItem) usecase.ExternalMatch {
	out := usecase.ExternalMatch{
		ID:           item.ID,
		SeasonID:     item.SeasonID,
		Tour:         item.Tour,
		Date:         strings.TrimSpace(item.Date),
		Time:         strings.TrimSpace(item.Time),
		HomeTeamID:   item.HomeTeam.ID,
		AwayTeamID:   item.AwayTeam.ID,
		HomeTeamName: strings.TrimSpace(item.HomeTeam.Name),
		AwayTeamName: strings.TrimSpace(item.AwayTeam.Name),
		HomeScore:    item.HomeScore,
		AwayScore:    item.AwayScore,
		Venue:        strings.TrimSpace(item.Venue),
		Status:       strings.TrimSpace(item.Status),
		HasDetails:   item.HasDetails || len(item.Lineups) > 0 || len(item.Events) > 0,
	}

	for _, entry := range item.Lineups {
		out.Lineups = append(out.Lineups, usecase.ExternalLineupEntry{
			PlayerID:   entry.PlayerID,
			PlayerName: strings.TrimSpace(entry.PlayerName),
			TeamID:     entry.TeamID,
			Number:     entry.Number,
			Position:   strings.TrimSpace(entry.Position),
			Starting:   entry.Starting,
		})
	}
	for _, entry := range item.Events {
		out.Events = append(out.Events, usecase.ExternalMatchEvent{
			Minute:   entry.Minute,
			Type:     strings.TrimSpace(entry.Type),
			TeamID:   entry.TeamID,
			PlayerID: entry.PlayerID,
			Detail:   strings.TrimSpace(entry.Detail),
		})
	}
	return out
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "soccer api circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: provider is temporarily unavailable", usecase.ErrUpstreamUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("apikey", c.token)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errProviderTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, retryable, err := c.once(ctx, fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !retryable || attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "soccer api request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	if stderrors.Is(lastErr, errProviderTransient) {
		return nil, fmt.Errorf("%w: %s", usecase.ErrUpstreamUnavailable, sanitizeSensitiveText(lastErr.Error(), c.token))
	}
	return nil, lastErr
}

func (c *Client) once(ctx context.Context, fullURL string) (raw []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: send request: %s", errProviderTransient, sanitizeSensitiveText(err.Error(), c.token))
	}
	defer func() { _ = resp.Body.Close() }()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, readErr := buf.ReadFrom(http.MaxBytesReader(nil, resp.Body, maxResponseBytes)); readErr != nil {
		return nil, true, fmt.Errorf("%w: read response body: %v", errProviderTransient, readErr)
	}
	body := append([]byte(nil), buf.Bytes()...)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, false, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, fmt.Errorf("%w: provider status=404 body=%s", usecase.ErrUpstreamNotFound, abbreviateBody(body))
	case isRetryableStatus(resp.StatusCode):
		return nil, true, fmt.Errorf("%w: provider status=%d body=%s", errProviderTransient, resp.StatusCode, abbreviateBody(body))
	default:
		return nil, false, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(body))
	}
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apikey=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("apikey") {
		query.Set("apikey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
