package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alekpstro/UGEvents/internal/delivery/http/helpers"
	"github.com/alekpstro/UGEvents/internal/delivery/http/middleware"
	"github.com/alekpstro/UGEvents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr    error
	createResult *domain.Event
	getErr       error
	getResult    *domain.Event
	listErr      error
	listResult   []*domain.Event
	updateErr    error
	updateResult *domain.Event
	deleteErr    error
	deleteResult *domain.Event

	lastCreateCreatorID int64
	lastCreateLabels    []string
	lastListFilter      domain.EventFilter
	lastUpdateEventID   int64
	lastUpdateUserID    int64
	lastUpdate          domain.EventUpdate
	lastDeleteEventID   int64
	lastDeleteUserID    int64
}

func (f *fakeEventService) CreateEvent(ctx context.Context, creatorID int64, title, description string, date time.Time, location string, labels []string) (*domain.Event, error) {
	f.lastCreateCreatorID = creatorID
	f.lastCreateLabels = labels
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, id int64) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeEventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastListFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, eventID, userID int64, upd domain.EventUpdate) (*domain.Event, error) {
	f.lastUpdateEventID = eventID
	f.lastUpdateUserID = userID
	f.lastUpdate = upd
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, eventID, userID int64) (*domain.Event, error) {
	f.lastDeleteEventID = eventID
	f.lastDeleteUserID = userID
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteResult, nil
}

func sampleEvent(id int64) *domain.Event {
	return &domain.Event{
		ID:        id,
		Title:     "Guest Lecture",
		Date:      time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
		Location:  "Aula 042",
		Labels:    []string{"lecture"},
		CreatorID: 7,
	}
}

func TestEventController_List(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		fake        *fakeEventService
		wantStatus  int
		checkFilter func(t *testing.T, f domain.EventFilter)
	}{
		{
			name:       "no filters defaults to ascending",
			query:      "",
			fake:       &fakeEventService{listResult: []*domain.Event{sampleEvent(1), sampleEvent(2)}},
			wantStatus: http.StatusOK,
			checkFilter: func(t *testing.T, f domain.EventFilter) {
				assert.Empty(t, f.Label)
				assert.Nil(t, f.Day)
				assert.Equal(t, domain.SortAsc, f.Order)
			},
		},
		{
			name:       "label and desc order",
			query:      "?label=workshop&orderBy=desc",
			fake:       &fakeEventService{listResult: []*domain.Event{}},
			wantStatus: http.StatusOK,
			checkFilter: func(t *testing.T, f domain.EventFilter) {
				assert.Equal(t, "workshop", f.Label)
				assert.Equal(t, domain.SortDesc, f.Order)
			},
		},
		{
			name:       "date filter parses calendar day",
			query:      "?date=2026-03-14",
			fake:       &fakeEventService{listResult: []*domain.Event{}},
			wantStatus: http.StatusOK,
			checkFilter: func(t *testing.T, f domain.EventFilter) {
				require.NotNil(t, f.Day)
				assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), *f.Day)
			},
		},
		{
			name:       "invalid orderBy",
			query:      "?orderBy=sideways",
			fake:       &fakeEventService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid date",
			query:      "?date=14-03-2026",
			fake:       &fakeEventService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "service failure",
			query:      "",
			fake:       &fakeEventService{listErr: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodGet, "http://test/events/calendar"+tt.query, nil)
			rr := httptest.NewRecorder()
			ctrl.List(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.checkFilter != nil && tt.wantStatus == http.StatusOK {
				tt.checkFilter(t, tt.fake.lastListFilter)
			}
		})
	}
}

func TestEventController_List_storageErrorNotLeaked(t *testing.T) {
	fake := &fakeEventService{
		listErr: errors.New(`list events: pq: password authentication failed for user "postgres"`),
	}
	ctrl := NewEventController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "http://test/events/calendar", nil)
	rr := httptest.NewRecorder()
	ctrl.List(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeInternalError, envelope.Error.Code)
	assert.Equal(t, helpers.MsgInternalError, envelope.Error.Message)
	assert.NotContains(t, rr.Body.String(), "pq:", "storage errors stay in the logs, not on the wire")
}

func TestEventController_Get(t *testing.T) {
	tests := []struct {
		name       string
		eventID    string
		fake       *fakeEventService
		wantStatus int
	}{
		{
			name:       "success",
			eventID:    "5",
			fake:       &fakeEventService{getResult: sampleEvent(5)},
			wantStatus: http.StatusOK,
		},
		{
			name:       "not found",
			eventID:    "99",
			fake:       &fakeEventService{getErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non-numeric id",
			eventID:    "abc",
			fake:       &fakeEventService{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodGet, "http://test/events/"+tt.eventID, nil)
			req.SetPathValue("eventID", tt.eventID)
			rr := httptest.NewRecorder()
			ctrl.Get(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var data domain.Event
				require.NoError(t, json.Unmarshal(dataBytes, &data))
				assert.Equal(t, int64(5), data.ID)
				assert.Equal(t, []string{"lecture"}, data.Labels)
			}
		})
	}
}

func TestEventController_Create(t *testing.T) {
	validBody := `{"title":"Guest Lecture","description":"{}","date":"2026-03-14T15:00:00Z","location":"Aula 042","labels":["lecture"]}`

	tests := []struct {
		name          string
		body          string
		noUserContext bool
		fake          *fakeEventService
		wantStatus    int
		wantErrCode   string
	}{
		{
			name:       "success",
			body:       validBody,
			fake:       &fakeEventService{createResult: sampleEvent(1)},
			wantStatus: http.StatusCreated,
		},
		{
			name:          "no session",
			body:          validBody,
			noUserContext: true,
			fake:          &fakeEventService{},
			wantStatus:    http.StatusUnauthorized,
			wantErrCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:        "missing title",
			body:        `{"description":"{}","date":"2026-03-14T15:00:00Z","location":"Aula 042"}`,
			fake:        &fakeEventService{},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "bad date format",
			body:        `{"title":"Guest Lecture","date":"14/03/2026","location":"Aula 042"}`,
			fake:        &fakeEventService{},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "creator id from payload rejected as unknown field",
			body:        `{"title":"Guest Lecture","date":"2026-03-14","location":"Aula 042","creator_id":99}`,
			fake:        &fakeEventService{},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/events/manage/create", bytes.NewBufferString(tt.body))
			if !tt.noUserContext {
				req = req.WithContext(middleware.SetUserID(req.Context(), 7))
			}
			rr := httptest.NewRecorder()
			ctrl.Create(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, int64(7), tt.fake.lastCreateCreatorID, "creator must come from the session")
			} else {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
			}
		})
	}
}

func TestEventController_Update(t *testing.T) {
	validBody := `{"title":"Guest Lecture (moved)","date":"2026-03-15T15:00:00Z","location":"Aula 043"}`

	tests := []struct {
		name        string
		eventID     int64
		body        string
		fake        *fakeEventService
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "success",
			eventID:    5,
			body:       validBody,
			fake:       &fakeEventService{updateResult: sampleEvent(5)},
			wantStatus: http.StatusOK,
		},
		{
			name:        "non-creator forbidden",
			eventID:     5,
			body:        validBody,
			fake:        &fakeEventService{updateErr: domain.ErrForbidden},
			wantStatus:  http.StatusForbidden,
			wantErrCode: helpers.ErrCodeForbidden,
		},
		{
			name:        "event missing",
			eventID:     99,
			body:        validBody,
			fake:        &fakeEventService{updateErr: domain.ErrNotFound},
			wantStatus:  http.StatusNotFound,
			wantErrCode: helpers.ErrCodeNotFound,
		},
		{
			name:        "missing title",
			eventID:     5,
			body:        `{"date":"2026-03-15","location":"Aula 043"}`,
			fake:        &fakeEventService{},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.fake)
			id := strconv.FormatInt(tt.eventID, 10)
			req := httptest.NewRequest(http.MethodPatch, "http://test/events/"+id+"/edit", bytes.NewBufferString(tt.body))
			req.SetPathValue("eventID", id)
			req = req.WithContext(middleware.SetUserID(req.Context(), 7))
			rr := httptest.NewRecorder()
			ctrl.Update(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.eventID, tt.fake.lastUpdateEventID)
				assert.Equal(t, int64(7), tt.fake.lastUpdateUserID)
				assert.Nil(t, tt.fake.lastUpdate.Description, "omitted description must stay nil")
				assert.Nil(t, tt.fake.lastUpdate.Labels, "omitted labels must stay nil")
			} else {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
			}
		})
	}
}

func TestEventController_Update_labelsProvided(t *testing.T) {
	fake := &fakeEventService{updateResult: sampleEvent(5)}
	ctrl := NewEventController(testLogger, fake)
	body := `{"title":"Guest Lecture","date":"2026-03-15","location":"Aula 043","labels":[],"description":"updated"}`
	req := httptest.NewRequest(http.MethodPatch, "http://test/events/5/edit", bytes.NewBufferString(body))
	req.SetPathValue("eventID", "5")
	req = req.WithContext(middleware.SetUserID(req.Context(), 7))
	rr := httptest.NewRecorder()
	ctrl.Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, fake.lastUpdate.Labels, "explicit empty labels must clear the set")
	assert.Empty(t, fake.lastUpdate.Labels)
	require.NotNil(t, fake.lastUpdate.Description)
	assert.Equal(t, "updated", *fake.lastUpdate.Description)
}

func TestEventController_Delete(t *testing.T) {
	tests := []struct {
		name        string
		fake        *fakeEventService
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "success returns deleted event",
			fake:       &fakeEventService{deleteResult: sampleEvent(5)},
			wantStatus: http.StatusOK,
		},
		{
			name:        "non-creator forbidden",
			fake:        &fakeEventService{deleteErr: domain.ErrForbidden},
			wantStatus:  http.StatusForbidden,
			wantErrCode: helpers.ErrCodeForbidden,
		},
		{
			name:        "event missing",
			fake:        &fakeEventService{deleteErr: domain.ErrNotFound},
			wantStatus:  http.StatusNotFound,
			wantErrCode: helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodDelete, "http://test/events/5", nil)
			req.SetPathValue("eventID", "5")
			req = req.WithContext(middleware.SetUserID(req.Context(), 7))
			rr := httptest.NewRecorder()
			ctrl.Delete(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var data DeleteEventResponse
				require.NoError(t, json.Unmarshal(dataBytes, &data))
				assert.Equal(t, "event deleted", data.Message)
				require.NotNil(t, data.Event)
				assert.Equal(t, int64(5), data.Event.ID)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
			}
		})
	}
}
