package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"gensuite-api/internal/adapters/persistence/models"
	"gensuite-api/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SecurityService is the security event sink: structured log, async DB row,
// optional messaging-webhook POST. Callers never block on the result.
type SecurityService struct {
	events     repositories.SecurityEventRepository
	webhookURL string
	logger     zerolog.Logger
	client     *http.Client
}

// NewSecurityService creates a new security service
func NewSecurityService(events repositories.SecurityEventRepository, webhookURL string) *SecurityService {
	return &SecurityService{
		events:     events,
		webhookURL: webhookURL,
		logger:     zerolog.New(os.Stderr).With().Timestamp().Str("component", "security").Logger(),
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// webhookPayload is the body posted to the messaging webhook
type webhookPayload struct {
	EventID  string    `json:"event_id"`
	Event    string    `json:"event"`
	Details  string    `json:"details"`
	SourceIP string    `json:"source_ip"`
	At       time.Time `json:"at"`
}

// LogSecurityEvent records a notable security event (e.g. invalid-token
// attempts). Fire-and-forget: the log line is written inline, persistence
// and webhook delivery happen in the background.
func (s *SecurityService) LogSecurityEvent(event, details, sourceIP string) {
	eventID := uuid.New().String()

	s.logger.Warn().
		Str("event_id", eventID).
		Str("event", event).
		Str("source_ip", sourceIP).
		Msg(details)

	go s.deliver(eventID, event, details, sourceIP)
}

func (s *SecurityService) deliver(eventID, event, details, sourceIP string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.events != nil {
		record := &models.SecurityEvent{
			EventID:  eventID,
			Event:    event,
			Details:  details,
			SourceIP: sourceIP,
		}
		if err := s.events.Create(ctx, record); err != nil {
			s.logger.Error().Err(err).Str("event_id", eventID).Msg("failed to persist security event")
		}
	}

	if s.webhookURL != "" {
		s.postWebhook(ctx, webhookPayload{
			EventID:  eventID,
			Event:    event,
			Details:  details,
			SourceIP: sourceIP,
			At:       time.Now().UTC(),
		})
	}
}

func (s *SecurityService) postWebhook(ctx context.Context, payload webhookPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Msg("security webhook delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		s.logger.Error().Int("status", resp.StatusCode).Msg("security webhook rejected event")
	}
}
