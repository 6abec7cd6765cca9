package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

func TestDashboardDayRollover(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewRepository()
	s := NewLinkService(kv, Options{})

	day1 := time.Date(2024, 5, 1, 23, 50, 0, 0, time.Local)
	s.dashboard.now = fixedClock(day1)
	s.Load(ctx)

	for i := 0; i < 2; i++ {
		if _, err := s.Shorten(ctx, "example.com"); err != nil {
			t.Fatal(err)
		}
	}
	if d := s.Dashboard(ctx); d.TodayLinks != 2 || d.LastUpdate != "2024-05-01" {
		t.Fatalf("day 1 dashboard = %+v", d)
	}

	s.dashboard.now = fixedClock(day1.Add(20 * time.Minute))
	d := s.Dashboard(ctx)
	if d.TodayLinks != 0 || d.LastUpdate != "2024-05-02" {
		t.Errorf("after midnight dashboard = %+v", d)
	}
	if d.TotalLinks != 2 {
		t.Errorf("TotalLinks = %d, want 2", d.TotalLinks)
	}

	if _, err := s.Shorten(ctx, "example.org"); err != nil {
		t.Fatal(err)
	}
	if d := s.Dashboard(ctx); d.TodayLinks != 1 {
		t.Errorf("TodayLinks = %d, want 1", d.TodayLinks)
	}
}

func TestDashboardFirstShorteningOfNewDay(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewRepository()
	_ = kv.Set(ctx, ports.KeyDashboardData, `{"totalLinks":0,"totalClicks":0,"todayLinks":7,"lastUpdate":"2024-04-30"}`)

	s := NewLinkService(kv, Options{})
	s.dashboard.now = fixedClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local))
	s.Load(ctx)

	if _, err := s.Shorten(ctx, "example.com"); err != nil {
		t.Fatal(err)
	}
	if d := s.dashboard.Data(); d.TodayLinks != 1 {
		t.Errorf("TodayLinks = %d, want 1", d.TodayLinks)
	}
}

func TestDashboardPersisted(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewRepository()
	s := newTestService(t, kv)
	rec, _ := s.Shorten(ctx, "example.com")
	s.Resolve(ctx, domain.Target{Fragment: rec.ShortCode}, &recordingNavigator{})

	raw, err := kv.Get(ctx, ports.KeyDashboardData)
	if err != nil {
		t.Fatalf("dashboard not persisted: %v", err)
	}
	var d domain.DashboardData
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatal(err)
	}
	if d.TotalLinks != 1 || d.TotalClicks != 1 || d.TodayLinks != 1 {
		t.Errorf("persisted dashboard = %+v", d)
	}
}
