package fixtures

import (
	"context"
	"sync"

	"github.com/ShantamRU/extraordinary-bank/pkg/provider"
)

// StaticRateProvider serves a fixed rate table, or fails with Err when set.
type StaticRateProvider struct {
	Table map[string]provider.RateInfo
	Err   error
	Calls int
}

func (p *StaticRateProvider) FetchRates(context.Context) (map[string]provider.RateInfo, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Table, nil
}

var _ provider.RateProvider = (*StaticRateProvider)(nil)

// Notification is one captured Send call.
type Notification struct {
	Recipient string
	Subject   string
	Body      string
}

// RecordingNotifier captures notifications so tests can read delivered codes.
type RecordingNotifier struct {
	mu   sync.Mutex
	Sent []Notification
}

func (n *RecordingNotifier) Send(_ context.Context, recipient, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, Notification{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

// Last returns the most recent notification.
func (n *RecordingNotifier) Last() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Sent) == 0 {
		return Notification{}
	}
	return n.Sent[len(n.Sent)-1]
}

var _ provider.Notifier = (*RecordingNotifier)(nil)
