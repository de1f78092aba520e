package alerts

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/kinitsZ/HybridAI-System/pkg/stress"
	"github.com/kinitsZ/HybridAI-System/server/internal/config"
)

const (
	defaultCooldown = 15 * time.Minute
	maxHistoryLen   = 200
	recentWindow    = time.Hour
)

// Alert is one fire or resolve event produced by the rule engine.
type Alert struct {
	ID         string     `json:"id"`
	RuleName   string     `json:"rule_name"`
	DatasetID  string     `json:"dataset_id"`
	Severity   string     `json:"severity"`
	Message    string     `json:"message"`
	Value      float64    `json:"value"`
	FiredAt    time.Time  `json:"fired_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	State      string     `json:"state"` // "firing" | "resolved"
}

// Engine evaluates alert rules against dataset summaries. A rule tracks the
// newest dataset only: it fires when that dataset matches and resolves when a
// later one does not.
//
// Engine is safe for concurrent use.
type Engine struct {
	rules    []config.AlertRule
	webhooks []config.WebhookConfig

	mu       sync.Mutex
	active   map[string]*Alert    // key: rule name
	lastFire map[string]time.Time // for cooldown
	history  []*Alert             // recently resolved alerts
	client   *http.Client
	now      func() time.Time
	wg       sync.WaitGroup
}

// New creates an Engine from the server alert configuration.
// An Engine with no rules is valid; Evaluate becomes a no-op.
func New(cfg config.AlertsConfig) *Engine {
	return &Engine{
		rules:    cfg.Rules,
		webhooks: cfg.Webhooks,
		active:   make(map[string]*Alert),
		lastFire: make(map[string]time.Time),
		client:   &http.Client{Timeout: 10 * time.Second},
		now:      time.Now,
	}
}

// Evaluate tests every rule against the summary of dataset datasetID.
// Webhook delivery runs in the background.
func (e *Engine) Evaluate(datasetID string, s stress.Summary) {
	if len(e.rules) == 0 {
		return
	}

	for _, rule := range e.rules {
		fires, value := evalCondition(rule.Condition, s)

		e.mu.Lock()
		now := e.now()
		var event *Alert
		if fires {
			event = e.fire(rule, datasetID, value, now)
		} else {
			event = e.resolve(rule.Name, now)
		}
		e.mu.Unlock()

		if event == nil {
			continue
		}
		if event.State == "firing" {
			slog.Warn("alerts: fired",
				"rule", rule.Name,
				"dataset", datasetID,
				"value", value,
				"severity", event.Severity,
			)
		} else {
			slog.Info("alerts: resolved", "rule", rule.Name, "dataset", datasetID)
		}
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.deliver(event)
		}()
	}
}

// fire records a firing alert unless the rule is still cooling down. It
// returns a copy for delivery, or nil. Callers hold e.mu.
func (e *Engine) fire(rule config.AlertRule, datasetID string, value float64, now time.Time) *Alert {
	cooldown := rule.Cooldown
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	if last, ok := e.lastFire[rule.Name]; ok && now.Sub(last) < cooldown {
		return nil
	}
	sev := rule.Severity
	if sev == "" {
		sev = "warning"
	}
	a := &Alert{
		ID:        fmt.Sprintf("%s:%s:%d", rule.Name, datasetID, now.UnixNano()),
		RuleName:  rule.Name,
		DatasetID: datasetID,
		Severity:  sev,
		Value:     value,
		Message: fmt.Sprintf("[%s] %s fired on dataset %s: %s (value %.2f)",
			sev, rule.Name, datasetID, rule.Condition, value),
		FiredAt: now,
		State:   "firing",
	}
	e.active[rule.Name] = a
	e.lastFire[rule.Name] = now
	cp := *a
	return &cp
}

// resolve moves a firing alert to history. Callers hold e.mu.
func (e *Engine) resolve(name string, now time.Time) *Alert {
	a, ok := e.active[name]
	if !ok {
		return nil
	}
	a.State = "resolved"
	a.ResolvedAt = &now
	delete(e.active, name)

	e.history = append(e.history, a)
	if len(e.history) > maxHistoryLen {
		e.history = e.history[len(e.history)-maxHistoryLen:]
	}
	cp := *a
	return &cp
}

// Active returns copies of all firing alerts plus alerts resolved within the
// past hour, newest first.
func (e *Engine) Active() []*Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.now().Add(-recentWindow)
	out := make([]*Alert, 0, len(e.active))

	for _, a := range e.active {
		cp := *a
		out = append(out, &cp)
	}
	for _, a := range e.history {
		if a.ResolvedAt != nil && a.ResolvedAt.After(cutoff) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FiredAt.After(out[j].FiredAt) })
	return out
}

// Wait blocks until in-flight webhook deliveries finish.
func (e *Engine) Wait() {
	e.wg.Wait()
}
