package notification

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	insightdomain "assistant-backend/internal/insight/domain"
	insightrepo "assistant-backend/internal/insight/repository"
	userrepo "assistant-backend/internal/user/repository"
	"assistant-backend/pkg/fcm"
)

// Connection is one live outbound channel to a client. Send must be safe to
// call from multiple goroutines; IsOpen reports whether delivery can still
// succeed.
type Connection interface {
	Send(payload []byte) error
	IsOpen() bool
}

// Envelope is the wire frame pushed to clients.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Status reports the registry's current shape.
type Status struct {
	ActiveUsers      int      `json:"active_users"`
	TotalConnections int      `json:"total_connections"`
	Users            []string `json:"users"`
}

// Service owns the user -> connections registry and pushes insights to live
// clients. Delivery is best-effort and at-most-once per open connection; the
// store remains the source of truth, so a client that was offline recovers
// pending insights on its next subscribe.
type Service struct {
	mu          sync.Mutex
	subscribers map[string]map[Connection]struct{}

	insightRepo insightrepo.InsightRepository
	tokenRepo   userrepo.DeviceTokenRepository
	fcmClient   *fcm.Client
	replayLimit int
}

// NewService creates the notification service. fcmClient may be nil; push
// delivery is then skipped.
func NewService(insightRepo insightrepo.InsightRepository, tokenRepo userrepo.DeviceTokenRepository, fcmClient *fcm.Client, replayLimit int) *Service {
	if replayLimit <= 0 {
		replayLimit = 5
	}
	return &Service{
		subscribers: make(map[string]map[Connection]struct{}),
		insightRepo: insightRepo,
		tokenRepo:   tokenRepo,
		fcmClient:   fcmClient,
		replayLimit: replayLimit,
	}
}

// Subscribe registers a connection for a user and immediately replays the
// user's current pending insights to that connection only.
func (s *Service) Subscribe(userID string, conn Connection) {
	s.mu.Lock()
	set, ok := s.subscribers[userID]
	if !ok {
		set = make(map[Connection]struct{})
		s.subscribers[userID] = set
	}
	set[conn] = struct{}{}
	s.mu.Unlock()

	log.Printf("[Notification] User %s subscribed", userID)
	s.sendPendingInsights(userID, conn)
}

// Unsubscribe removes a connection; the user's entry is dropped entirely when
// its last connection goes away.
func (s *Service) Unsubscribe(userID string, conn Connection) {
	s.mu.Lock()
	if set, ok := s.subscribers[userID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(s.subscribers, userID)
		}
	}
	s.mu.Unlock()

	log.Printf("[Notification] User %s unsubscribed", userID)
}

// Notify delivers an insight to every open connection of the user. Connections
// that are no longer open are silently skipped. With no connections this is a
// no-op; FCM push (when configured) still runs so mobile devices hear about it.
func (s *Service) Notify(userID string, insight *insightdomain.Insight) {
	s.deliver(userID, Envelope{Type: "new_insight", Data: insight})

	if s.fcmClient != nil && s.tokenRepo != nil {
		go s.pushToDevices(userID, insight)
	}
}

// Broadcast resolves the owner from the insight and notifies them.
func (s *Service) Broadcast(insight *insightdomain.Insight) {
	s.Notify(insight.UserID, insight)
}

// SendBatch delivers several insights as one frame.
func (s *Service) SendBatch(userID string, insights []*insightdomain.Insight) {
	s.deliver(userID, Envelope{Type: "insight_batch", Data: insights})
}

// GetStatus reports active users and total connection count.
func (s *Service) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{Users: make([]string, 0, len(s.subscribers))}
	for userID, set := range s.subscribers {
		status.Users = append(status.Users, userID)
		status.TotalConnections += len(set)
	}
	status.ActiveUsers = len(s.subscribers)
	return status
}

func (s *Service) sendPendingInsights(userID string, conn Connection) {
	insights, err := s.insightRepo.GetPending(userID, s.replayLimit)
	if err != nil {
		log.Printf("[Notification] Error loading pending insights for user %s: %v", userID, err)
		return
	}
	if len(insights) == 0 {
		return
	}

	payload, err := json.Marshal(Envelope{Type: "pending_insights", Data: insights})
	if err != nil {
		log.Printf("[Notification] Error marshaling pending insights: %v", err)
		return
	}
	if conn.IsOpen() {
		if err := conn.Send(payload); err != nil {
			log.Printf("[Notification] Error replaying pending insights to user %s: %v", userID, err)
		}
	}
}

// deliver pushes one frame to every open connection of the user.
func (s *Service) deliver(userID string, envelope Envelope) {
	s.mu.Lock()
	conns := make([]Connection, 0, len(s.subscribers[userID]))
	for conn := range s.subscribers[userID] {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	if len(conns) == 0 {
		return
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("[Notification] Error marshaling envelope: %v", err)
		return
	}

	for _, conn := range conns {
		if !conn.IsOpen() {
			continue
		}
		if err := conn.Send(payload); err != nil {
			log.Printf("[Notification] Error delivering to user %s: %v", userID, err)
		}
	}
}

// pushToDevices fans the insight out over FCM, pruning dead tokens.
func (s *Service) pushToDevices(userID string, insight *insightdomain.Insight) {
	tokens, err := s.tokenRepo.GetTokensByUserID(userID)
	if err != nil {
		log.Printf("[FCM] Error getting tokens for user %s: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	tokenStrings := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	failedTokens, err := s.fcmClient.SendToDevices(context.Background(), tokenStrings, fcm.PushMessage{
		Title: insight.Title,
		Body:  insight.Description,
		Data: map[string]string{
			"type":       "new_insight",
			"insight_id": insight.ID,
			"priority":   string(insight.Priority),
		},
	})
	if err != nil {
		log.Printf("[FCM] Error sending insight push: %v", err)
		return
	}

	for _, token := range failedTokens {
		if err := s.tokenRepo.DeleteToken(token); err != nil {
			log.Printf("[FCM] Error pruning token: %v", err)
		}
	}
}
