package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/schedule"
	aisvc "github.com/studyroom/backend/services/ai"
	testutil "github.com/studyroom/backend/tests"
)

const scheduleText = `DAILY STUDY PLAN
9:00 AM - 10:30 AM - Focus study session
- Stay hydrated`

func Test_home(t *testing.T) {
	app := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	app.server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to "+app.conf.AppName+" API!", rec.Body.String())
}

func Test_scheduleApi_generateCalendar(t *testing.T) {
	app := setup(t)
	testutil.CreateSchedule(t, app.schedRepo, "abc123", "u1", scheduleText)

	t.Run("export", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/generate-calendar?scheduleId=abc123")
		req.Header.Set("Origin", "https://studyroom.app")
		app.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `inline; filename="study-schedule.ics"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

		body := rec.Body.String()
		assert.Equal(t, 1, strings.Count(body, "BEGIN:VEVENT"))
		assert.Contains(t, body, "UID:abc123-900@studyroom.app")
		assert.Contains(t, body, "RRULE:FREQ=DAILY")
		assert.Contains(t, body, "SUMMARY:Focus study session")
		assert.NotContains(t, body, "Stay hydrated")
	})

	tests := []httpTest{
		{
			name:     "missing id",
			path:     "/v1/generate-calendar",
			wantCode: http.StatusInternalServerError,
			wantData: marchallObj(t, httpErr{Error: "Schedule ID is required"}),
		},
		{
			name:     "unknown id",
			path:     "/v1/generate-calendar?scheduleId=nope",
			wantCode: http.StatusInternalServerError,
			wantData: marchallObj(t, httpErr{Error: "Schedule not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
			assert.Equal(t, "application/json; charset=UTF-8", rec.Header().Get("Content-Type"))
		})
	}
}

func Test_cors_preflight(t *testing.T) {
	app := setup(t)

	for _, path := range []string{"/v1/generate-calendar", "/v1/generate-schedule"} {
		req, rec := newRequest(http.MethodOptions, path)
		req.Header.Set("Origin", "https://studyroom.app")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		app.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code, path)
		assert.Empty(t, rec.Body.String(), path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Equal(t, "authorization,x-client-info,apikey,content-type", rec.Header().Get("Access-Control-Allow-Headers"), path)
	}
}

func Test_scheduleApi_generateSchedule(t *testing.T) {
	app := setup(t)
	body := marchallObj(t, aisvc.Request{SleepTime: "11:00 PM", WakeTime: "7:00 AM", EnergyPeaks: "morning", StudyGoals: "calculus"})

	tests := []httpTest{
		{
			name:     "success",
			body:     body,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]string{"schedule": scheduleText}),
		},
		{
			name:     "missing times",
			body:     []byte(`{"energyPeaks": "evening"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"sleepTime": "this field is required",
				"wakeTime":  "this field is required",
			}),
		},
		{
			name:     "not a clock time",
			body:     []byte(`{"sleepTime": "late", "wakeTime": "7:00"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"sleepTime": "sleepTime must be a clock time like 7:00 AM or 23:00"}),
		},
		{
			name:     "rate limited",
			body:     body,
			extra:    aisvc.ErrRateLimited,
			wantCode: http.StatusTooManyRequests,
			wantData: marchallObj(t, httpErr{Error: "Rate limit exceeded. Please try again later."}),
		},
		{
			name:     "payment required",
			body:     body,
			extra:    aisvc.ErrPaymentRequired,
			wantCode: http.StatusPaymentRequired,
			wantData: marchallObj(t, httpErr{Error: "Payment required. Please add credits to your workspace."}),
		},
		{
			name:     "gateway error",
			body:     body,
			extra:    aisvc.ErrGateway,
			wantCode: http.StatusInternalServerError,
			wantData: marchallObj(t, httpErr{Error: "AI gateway error"}),
		},
		{
			name:     "missing key",
			body:     body,
			extra:    core.NewConfigError("AI gateway API key is not configured"),
			wantCode: http.StatusInternalServerError,
			wantData: marchallObj(t, httpErr{Error: "AI gateway API key is not configured"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.generator.text = scheduleText
			app.generator.err, _ = tt.extra.(error)

			req, rec := newRequest(http.MethodPost, "/v1/generate-schedule", tt.body)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	require.NotEmpty(t, app.generator.reqs)
	assert.Equal(t, "11:00 PM", app.generator.reqs[0].SleepTime)
	assert.Equal(t, "calculus", app.generator.reqs[0].StudyGoals)
}

func Test_scheduleApi_render(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name:     "render",
			body:     marchallObj(t, map[string]string{"schedule": scheduleText}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, schedule.Render(scheduleText)),
		},
		{
			name:     "empty",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "schedule text is required"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/schedules/render", tt.body)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_scheduleApi_auth(t *testing.T) {
	app := setup(t)
	badToken, err := testTokenWithKey("u1", "not-the-secret")
	require.NoError(t, err)

	tests := []httpTest{
		{name: "create without token", method: http.MethodPost, path: "/v1/schedules", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "query without token", method: http.MethodGet, path: "/v1/schedules", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "segments without token", method: http.MethodGet, path: "/v1/schedules/abc/segments", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "forged token", method: http.MethodGet, path: "/v1/schedules", token: badToken, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errInvalidToken)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_scheduleApi_create(t *testing.T) {
	app := setup(t)
	token := getToken(t, app.conf, "u1")

	body := marchallObj(t, schedule.NewSchedule{
		SleepTime:         "11:00 PM",
		WakeTime:          "7:00 AM",
		EnergyPeaks:       "morning",
		StudyGoals:        "calculus",
		GeneratedSchedule: scheduleText,
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/schedules", token, body)
	app.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got schedule.Schedule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, scheduleText, got.GeneratedSchedule)

	stored, err := app.schedRepo.GetScheduleByID(req.Context(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)

	tt := httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, map[string]string{
			"sleep_time":         "this field is required",
			"wake_time":          "this field is required",
			"generated_schedule": "this field is required",
		}),
	}
	req, rec = newAuthRequest(http.MethodPost, "/v1/schedules", token, []byte(`{}`))
	app.server.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_scheduleApi_queryAndSegments(t *testing.T) {
	app := setup(t)
	t0 := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	older := testutil.CreateSchedule(t, app.schedRepo, "s-older", "u1", scheduleText, t0)
	newer := testutil.CreateSchedule(t, app.schedRepo, "s-newer", "u1", scheduleText, t0.Add(time.Hour))
	testutil.CreateSchedule(t, app.schedRepo, "s-other", "u2", scheduleText, t0)

	u1 := getToken(t, app.conf, "u1")
	u3 := getToken(t, app.conf, "u3")

	tests := []httpTest{
		{name: "query", path: "/v1/schedules", token: u1, wantCode: http.StatusOK, wantData: marchallList(t, newer, older)},
		{name: "query empty", path: "/v1/schedules", token: u3, wantCode: http.StatusOK, wantData: marchallList(t)},
		{
			name:     "segments",
			path:     "/v1/schedules/s-older/segments",
			token:    u1,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, schedule.Render(scheduleText)),
		},
		{
			name:     "segments of another user",
			path:     "/v1/schedules/s-other/segments",
			token:    u1,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Schedule not found"}),
		},
		{
			name:     "segments of unknown schedule",
			path:     "/v1/schedules/nope/segments",
			token:    u1,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Schedule not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
