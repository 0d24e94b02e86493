// Package synthetic produces plausible, schema-correct stand-ins for real
// destination responses. Synthetic output keeps the UI functional while the
// system runs disconnected or a destination is unreachable.
package synthetic

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
)

// Generator fabricates destination responses with an artificial processing
// delay so that callers exercising loading-state logic behave realistically.
// Generation itself cannot fail; an unrecognized destination yields a minimal
// generic success payload instead of an error.
type Generator struct {
	delayMin time.Duration
	delayMax time.Duration
}

// New creates a generator with the given artificial delay bounds.
// A non-positive or inverted range degenerates to the minimum bound.
func New(delayMin, delayMax time.Duration) *Generator {
	if delayMin < 0 {
		delayMin = 0
	}
	if delayMax < delayMin {
		delayMax = delayMin
	}
	return &Generator{delayMin: delayMin, delayMax: delayMax}
}

// Generate produces a succeeded InvocationResult shaped like a real response
// from the named destination. The artificial delay is bounded and random; it is
// cut short when the context is cancelled, in which case the result is still
// returned so downstream UI never observes a generation failure.
func (g *Generator) Generate(
	ctx context.Context,
	destination string,
	payload agentDomain.Payload,
	correlationID string,
) agentDomain.InvocationResult {
	g.sleep(ctx)

	data := g.payloadFor(destination, payload)
	data["synthetic"] = true
	return agentDomain.NewSuccessResult(data, correlationID)
}

// sleep waits a random duration within the configured bounds or until the
// context is cancelled, whichever comes first.
func (g *Generator) sleep(ctx context.Context) {
	delay := g.delayMin
	if spread := g.delayMax - g.delayMin; spread > 0 {
		delay += rand.N(spread)
	}
	if delay <= 0 {
		return
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// payloadFor builds the destination-specific response shape. Field names match
// what the corresponding real destination returns so callers cannot
// structurally distinguish synthetic from real data.
func (g *Generator) payloadFor(destination string, payload agentDomain.Payload) agentDomain.Payload {
	action := ""
	if payload != nil {
		if v, ok := payload["action"].(string); ok {
			action = v
		}
	}

	switch destination {
	case agentDomain.DestinationSupervisor:
		return agentDomain.Payload{
			"status":          "completed",
			"workflow_id":     fmt.Sprintf("wf_%06d", rand.IntN(1000000)),
			"steps_completed": 3 + rand.IntN(5),
			"agents_involved": []string{"compliance", "communication"},
			"summary":         "Workflow executed across the agent fleet without manual intervention.",
		}
	case agentDomain.DestinationCompliance:
		score := 82 + rand.IntN(18)
		return agentDomain.Payload{
			"compliance_score": score,
			"compliant":        score >= 85,
			"issues":           complianceIssues(score),
			"document_type":    "purchase_agreement",
			"license_status": agentDomain.Payload{
				"valid":           true,
				"status":          "active",
				"expiration_date": time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
				"license_type":    "sales_associate",
			},
			"agent": destination,
		}
	case agentDomain.DestinationRecruiting:
		qualified := 3 + rand.IntN(7)
		return agentDomain.Payload{
			"pipeline_size":   qualified + 5 + rand.IntN(10),
			"qualified_count": qualified,
			"candidates":      candidates(qualified),
			"next_step":       "schedule_interviews",
			"agent":           destination,
		}
	case agentDomain.DestinationInvestments:
		return agentDomain.Payload{
			"roi_projection":   round2(6 + rand.Float64()*8),
			"cap_rate":         round2(4 + rand.Float64()*4),
			"annual_cash_flow": 12000 + rand.IntN(48000),
			"irr":              round2(8 + rand.Float64()*7),
			"recommendation":   "hold",
			"agent":            destination,
		}
	case agentDomain.DestinationCommunication:
		return agentDomain.Payload{
			"emails_sent":        10 + rand.IntN(40),
			"meetings_scheduled": 1 + rand.IntN(6),
			"follow_ups_pending": rand.IntN(8),
			"response_rate":      round2(0.4 + rand.Float64()*0.5),
			"agent":              destination,
		}
	case agentDomain.DestinationAnalytics:
		return agentDomain.Payload{
			"period": "last_30_days",
			"metrics": agentDomain.Payload{
				"deals_closed":    5 + rand.IntN(20),
				"revenue":         250000 + rand.IntN(750000),
				"conversion_rate": round2(0.1 + rand.Float64()*0.25),
			},
			"trend": "upward",
			"agent": destination,
		}
	default:
		// Unrecognized destinations still get a generic success payload: the
		// generator's job is to keep downstream UI functional, not to validate.
		data := agentDomain.Payload{
			"status": "completed",
			"agent":  destination,
		}
		if action != "" {
			data["action"] = action
		}
		return data
	}
}

func complianceIssues(score int) []string {
	if score >= 85 {
		return []string{}
	}
	return []string{"Missing signatures", "Incomplete disclosures"}
}

func candidates(count int) []agentDomain.Payload {
	names := []string{"Jordan Avery", "Sam Whitfield", "Riley Moreno", "Casey Lindqvist", "Alex Tran"}
	stages := []string{"sourced", "screened", "interview_scheduled"}

	out := make([]agentDomain.Payload, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, agentDomain.Payload{
			"name":  names[i%len(names)],
			"score": 60 + rand.IntN(40),
			"stage": stages[i%len(stages)],
		})
	}
	return out
}

func round2(v float64) float64 {
	return float64(int(v*100)) / 100
}
