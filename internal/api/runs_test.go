package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rosseoko/erandi/internal/model"
)

// waitForAwaiting polls until the run parks on the given input kind.
func waitForAwaiting(t *testing.T, ts *httptest.Server, id, kind string) runResponse {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(ts.URL + "/v1/runs/" + id)
		if err != nil {
			t.Fatalf("GET run: %v", err)
		}
		var body runResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			resp.Body.Close()
			t.Fatalf("decode run: %v", err)
		}
		resp.Body.Close()
		if body.Status == model.StatusAwaitingInput && body.AwaitingInput == kind {
			return body
		}
		if model.TerminalStatus(body.Status) {
			t.Fatalf("run reached %q (error %q) while waiting for %q", body.Status, body.Error, kind)
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("run %s did not park on %q within 5s", id, kind)
	return runResponse{}
}

func sendInput(t *testing.T, ts *httptest.Server, id, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/runs/"+id+"/input", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST input: %v", err)
	}
	return resp
}

func TestRunLifecycleOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/v1/runs", `{"raw_message":"a pollinator project for 3rd grade, two weeks"}`)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("create status = %d, want 202", resp.StatusCode)
	}
	var created runResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created run: %v", err)
	}
	resp.Body.Close()
	if created.Status != model.StatusPending {
		t.Errorf("created status = %q, want pending", created.Status)
	}

	// The stub profile is complete, so the run walks to option selection.
	parked := waitForAwaiting(t, ts, created.ID, model.InputOptionSelection)
	if parked.Progress == nil || parked.Progress.Step < 6 {
		t.Errorf("progress = %+v, want at least 6 checkpoints at selection", parked.Progress)
	}

	// Select, approve all three components, approve the unit.
	inputs := []string{
		`{"kind":"option_selection","selection":0}`,
		`{"kind":"curriculum_review","approved":true}`,
		`{"kind":"assessment_review","approved":true}`,
		`{"kind":"resources_review","approved":true}`,
		`{"kind":"final_review","approved":true}`,
	}
	kinds := []string{
		model.InputCurriculumReview,
		model.InputAssessmentReview,
		model.InputResourcesReview,
		model.InputFinalReview,
	}
	for i, in := range inputs {
		r := sendInput(t, ts, created.ID, in)
		if r.StatusCode != http.StatusOK {
			t.Fatalf("input %d status = %d, want 200", i, r.StatusCode)
		}
		r.Body.Close()
		if i < len(kinds) {
			waitForAwaiting(t, ts, created.ID, kinds[i])
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		r, err := http.Get(ts.URL + "/v1/runs/" + created.ID)
		if err != nil {
			t.Fatalf("GET run: %v", err)
		}
		var body runResponse
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode run: %v", err)
		}
		r.Body.Close()
		if body.Status == model.StatusCompleted {
			if body.Progress.Step != body.Progress.Total {
				t.Errorf("final progress = %d/%d, want complete", body.Progress.Step, body.Progress.Total)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("run did not complete, status %q", body.Status)
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Timeline history is available afterwards.
	r, err := http.Get(ts.URL + "/v1/runs/" + created.ID + "/events/history")
	if err != nil {
		t.Fatalf("GET events history: %v", err)
	}
	defer r.Body.Close()
	var history eventHistoryResponse
	if err := json.NewDecoder(r.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.Events) == 0 {
		t.Fatal("no timeline events")
	}
	if got := history.Events[len(history.Events)-1].Message; got != "run completed" {
		t.Errorf("last event = %q, want run completed", got)
	}
}

func TestCreateRunValidation(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/v1/runs", `{`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", resp.StatusCode)
	}

	resp = postJSON(t, ts.URL+"/v1/runs", `{}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("missing raw_message status = %d, want 422", resp.StatusCode)
	}
}

func TestGetRunNotFound(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/runs/does-not-exist")
	if err != nil {
		t.Fatalf("GET run: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestListRunsPagination(t *testing.T) {
	srv, s := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	for i := 0; i < 3; i++ {
		run := &model.Run{
			ID:        model.NewID(),
			SessionID: model.NewSessionID(),
			Status:    model.StatusCompleted,
			Stage:     model.StageFinalAssembly,
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := s.CreateRun(context.Background(), run); err != nil {
			t.Fatalf("CreateRun: %v", err)
		}
	}

	resp, err := http.Get(ts.URL + "/v1/runs?limit=2")
	if err != nil {
		t.Fatalf("GET runs: %v", err)
	}
	defer resp.Body.Close()

	var body listRunsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 3 {
		t.Errorf("total = %d, want 3", body.Total)
	}
	if len(body.Runs) != 2 {
		t.Errorf("page size = %d, want 2", len(body.Runs))
	}
	if body.Limit != 2 || body.Offset != 0 {
		t.Errorf("limit/offset = %d/%d, want 2/0", body.Limit, body.Offset)
	}
}

func TestRunInputErrors(t *testing.T) {
	srv, s := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	// Unknown run.
	resp := sendInput(t, ts, "missing", `{"kind":"final_review","approved":true}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown run status = %d, want 404", resp.StatusCode)
	}

	// Run that is not awaiting input.
	run := &model.Run{
		ID:        model.NewID(),
		SessionID: model.NewSessionID(),
		Status:    model.StatusRunning,
		Stage:     model.StageProfiling,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateRun(context.Background(), run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	resp = sendInput(t, ts, run.ID, `{"kind":"profile_details","message":"more"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("not-awaiting status = %d, want 409", resp.StatusCode)
	}

	// Missing kind.
	resp = sendInput(t, ts, run.ID, `{}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("missing kind status = %d, want 422", resp.StatusCode)
	}
}

func TestRunInputWrongKind(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/v1/runs", `{"raw_message":"pollinator project, 3rd grade, two weeks"}`)
	var created runResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()

	waitForAwaiting(t, ts, created.ID, model.InputOptionSelection)

	r := sendInput(t, ts, created.ID, `{"kind":"final_review","approved":true}`)
	defer r.Body.Close()
	if r.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("wrong kind status = %d, want 422", r.StatusCode)
	}
}

func TestCancelRun(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/v1/runs", `{"raw_message":"pollinator project, 3rd grade, two weeks"}`)
	var created runResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	waitForAwaiting(t, ts, created.ID, model.InputOptionSelection)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/runs/"+created.ID, nil)
	r, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE run: %v", err)
	}
	defer r.Body.Close()
	if r.StatusCode != http.StatusOK {
		t.Fatalf("cancel status = %d, want 200", r.StatusCode)
	}
	var body runResponse
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != model.StatusCancelled {
		t.Errorf("status = %q, want cancelled", body.Status)
	}

	// Cancelling again conflicts.
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/v1/runs/"+created.ID, nil)
	r2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("second DELETE: %v", err)
	}
	defer r2.Body.Close()
	if r2.StatusCode != http.StatusConflict {
		t.Errorf("second cancel status = %d, want 409", r2.StatusCode)
	}
}

func TestStreamEventsSSE(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/v1/runs", `{"raw_message":"pollinator project, 3rd grade, two weeks"}`)
	var created runResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	waitForAwaiting(t, ts, created.ID, model.InputOptionSelection)

	// Open the stream while parked, then drive the run to completion so
	// the stream ends with the done event.
	streamResp, err := http.Get(ts.URL + "/v1/runs/" + created.ID + "/events")
	if err != nil {
		t.Fatalf("GET events: %v", err)
	}
	defer streamResp.Body.Close()
	if ct := streamResp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q, want text/event-stream", ct)
	}

	go func() {
		for _, in := range []string{
			`{"kind":"option_selection","selection":0}`,
			`{"kind":"curriculum_review","approved":true}`,
			`{"kind":"assessment_review","approved":true}`,
			`{"kind":"resources_review","approved":true}`,
			`{"kind":"final_review","approved":true}`,
		} {
			for {
				r, err := http.Post(ts.URL+"/v1/runs/"+created.ID+"/input", "application/json", strings.NewReader(in))
				if err != nil {
					return
				}
				code := r.StatusCode
				r.Body.Close()
				if code == http.StatusOK {
					break
				}
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()

	scanner := bufio.NewScanner(streamResp.Body)
	var sawData, sawDone bool
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data: ") && line != "data: stream complete" {
			sawData = true
		}
		if line == "event: done" {
			sawDone = true
			break
		}
	}
	if !sawData {
		t.Error("no data events received on the stream")
	}
	if !sawDone {
		t.Error("stream did not end with the done event")
	}
}

func TestStreamEventsNotFound(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/runs/missing/events")
	if err != nil {
		t.Fatalf("GET events: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
