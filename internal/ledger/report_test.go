package ledger

import (
	"reflect"
	"testing"
	"time"
)

func TestBuildReportEmptyLedger(t *testing.T) {
	l := New(dec("1.00"))
	report := BuildReport("agent-1", l)

	if report.Transactions.Total != 0 {
		t.Errorf("expected 0 transactions, got %d", report.Transactions.Total)
	}
	if report.Transactions.SuccessRatePercent != 0 {
		t.Errorf("expected 0 success rate on empty ledger, got %v", report.Transactions.SuccessRatePercent)
	}
	if report.Budget.UtilizationPercent != 0 {
		t.Errorf("expected 0 utilization, got %v", report.Budget.UtilizationPercent)
	}
}

func TestBuildReportAggregation(t *testing.T) {
	l := New(dec("1.00"))
	l.RecordSuccess("/api/signal/AAPL", dec("0.005"), time.Millisecond, "r1")
	l.RecordSuccess("/api/sentiment", dec("0.01"), time.Millisecond, "r2")
	l.RecordSuccess("/api/signal/AAPL", dec("0.005"), time.Millisecond, "r3")
	l.RecordFailure("/api/predict/AAPL", dec("0.05"), "timeout")

	report := BuildReport("agent-1", l)

	if report.Transactions.Total != 4 || report.Transactions.Successful != 3 || report.Transactions.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", report.Transactions)
	}
	if report.Transactions.SuccessRatePercent != 75 {
		t.Errorf("expected 75%% success rate, got %v", report.Transactions.SuccessRatePercent)
	}

	if len(report.Endpoints) != 3 {
		t.Fatalf("expected 3 endpoint rows, got %d", len(report.Endpoints))
	}
	// First-seen order.
	if report.Endpoints[0].Endpoint != "/api/signal/AAPL" ||
		report.Endpoints[1].Endpoint != "/api/sentiment" ||
		report.Endpoints[2].Endpoint != "/api/predict/AAPL" {
		t.Errorf("endpoint order wrong: %+v", report.Endpoints)
	}
	if report.Endpoints[0].Count != 2 || !report.Endpoints[0].TotalCost.Equal(dec("0.01")) {
		t.Errorf("signal aggregation wrong: %+v", report.Endpoints[0])
	}

	if !report.Budget.Spent.Equal(dec("0.02")) {
		t.Errorf("expected spent 0.02, got %s", report.Budget.Spent)
	}
	if report.Budget.UtilizationPercent != 2 {
		t.Errorf("expected 2%% utilization, got %v", report.Budget.UtilizationPercent)
	}
}

func TestBuildReportIdempotent(t *testing.T) {
	l := New(dec("1.00"))
	l.RecordSuccess("/api/signal/AAPL", dec("0.005"), time.Millisecond, "r1")
	l.RecordFailure("/api/sentiment", dec("0.01"), "bad gateway")

	a := BuildReport("agent-1", l)
	b := BuildReport("agent-1", l)

	// Timestamps aside, the derived state must be identical.
	a.GeneratedAt = time.Time{}
	b.GeneratedAt = time.Time{}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("reports differ without intervening mutation:\n%+v\n%+v", a, b)
	}
}
