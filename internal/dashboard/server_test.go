package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"CryptoPulse/internal/logger"
	"CryptoPulse/internal/model"
	"CryptoPulse/internal/store"
)

// fakeStore implements store.Store in memory.
type fakeStore struct {
	snapshots []model.Snapshot
	loadErr   error
	feedback  map[int64][2]string
}

func (f *fakeStore) Init(context.Context) error { return nil }

func (f *fakeStore) Append(_ context.Context, s []model.Snapshot) error {
	f.snapshots = append(f.snapshots, s...)
	return nil
}

func (f *fakeStore) LoadAll(context.Context) ([]model.Snapshot, error) {
	return f.snapshots, f.loadErr
}

func (f *fakeStore) UpdateFeedback(_ context.Context, id int64, feedback, correction string) error {
	for _, s := range f.snapshots {
		if s.ID == id {
			if f.feedback == nil {
				f.feedback = make(map[int64][2]string)
			}
			f.feedback[id] = [2]string{feedback, correction}
			return nil
		}
	}
	return fmt.Errorf("snapshot %d: %w", id, store.ErrNotFound)
}

func (f *fakeStore) Close() error { return nil }

func testSnapshots() []model.Snapshot {
	return []model.Snapshot{
		{ID: 3, RunDate: "2025-06-02", Coin: "BTC", ActualPrice: 68000,
			HighForecast5D: `[{"date":"2025-06-03","value":68500},{"date":"2025-06-04","value":69000}]`},
		{ID: 2, RunDate: "2025-06-01", Coin: "ETH", ActualPrice: 3500, HighForecast5D: "[]"},
		{ID: 1, RunDate: "2025-06-01", Coin: "BTC", ActualPrice: 67000, HighForecast5D: "[]"},
	}
}

func newTestServer(fs *fakeStore) *httptest.Server {
	s := NewServer(fs, logger.New("error"))
	return httptest.NewServer(s.Router())
}

func TestSnapshots_ReturnsAll(t *testing.T) {
	ts := newTestServer(&fakeStore{snapshots: testSnapshots()})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/snapshots")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got []model.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(got))
	}
	if got[0].ID != 3 {
		t.Errorf("expected store order preserved, first id = %d", got[0].ID)
	}
}

func TestSnapshots_FilterByCoin(t *testing.T) {
	ts := newTestServer(&fakeStore{snapshots: testSnapshots()})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/snapshots?coin=btc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var got []model.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 BTC snapshots, got %d", len(got))
	}
	for _, s := range got {
		if s.Coin != "BTC" {
			t.Errorf("unexpected coin %s in filtered result", s.Coin)
		}
	}
}

func TestSnapshots_EmptyStoreGivesEmptyArray(t *testing.T) {
	ts := newTestServer(&fakeStore{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/snapshots")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var got []model.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty JSON array, got %v", got)
	}
}

func TestLatest_DecodesHighForecast(t *testing.T) {
	ts := newTestServer(&fakeStore{snapshots: testSnapshots()})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/snapshots/latest?coin=BTC")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got struct {
		ID           int64                 `json:"id"`
		HighForecast []model.ForecastPoint `json:"high_forecast"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != 3 {
		t.Errorf("expected latest BTC snapshot (id 3), got %d", got.ID)
	}
	if len(got.HighForecast) != 2 || got.HighForecast[0].Date != "2025-06-03" {
		t.Errorf("expected decoded forecast points, got %+v", got.HighForecast)
	}
}

func TestLatest_UnknownCoin404(t *testing.T) {
	ts := newTestServer(&fakeStore{snapshots: testSnapshots()})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/snapshots/latest?coin=DOGE")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestLatest_MissingCoinParam(t *testing.T) {
	ts := newTestServer(&fakeStore{snapshots: testSnapshots()})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/snapshots/latest")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func postFeedback(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	return resp
}

func TestFeedback_SavesDecision(t *testing.T) {
	fs := &fakeStore{snapshots: testSnapshots()}
	ts := newTestServer(fs)
	defer ts.Close()

	resp := postFeedback(t, ts.URL+"/api/v1/snapshots/3/feedback",
		map[string]string{"feedback": "Denied", "correction": "Trend looks up"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := fs.feedback[3]; got[0] != "Denied" || got[1] != "Trend looks up" {
		t.Errorf("feedback not saved: %v", got)
	}
}

func TestFeedback_RejectsInvalidDecision(t *testing.T) {
	ts := newTestServer(&fakeStore{snapshots: testSnapshots()})
	defer ts.Close()

	resp := postFeedback(t, ts.URL+"/api/v1/snapshots/3/feedback",
		map[string]string{"feedback": "maybe"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestFeedback_MissingSnapshot404(t *testing.T) {
	ts := newTestServer(&fakeStore{snapshots: testSnapshots()})
	defer ts.Close()

	resp := postFeedback(t, ts.URL+"/api/v1/snapshots/999/feedback",
		map[string]string{"feedback": "Confirmed"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSnapshots_StoreFailure500(t *testing.T) {
	ts := newTestServer(&fakeStore{loadErr: errors.New("db down")})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/snapshots")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
}
