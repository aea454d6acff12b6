package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"photostack-backend/application/services"
	"photostack-backend/domain/entities"
	apperrors "photostack-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeReader implements stackReader for tests.
type fakeReader struct {
	result  []entities.StackWithMedia
	err     error
	queries []services.StackReadQuery
}

func (f *fakeReader) GetStacksWithMedia(ctx context.Context, q services.StackReadQuery) ([]entities.StackWithMedia, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeWriter implements stackWriter for tests.
type fakeWriter struct {
	err      error
	commands []services.SaveStackCommand
}

func (f *fakeWriter) SaveStack(ctx context.Context, cmd services.SaveStackCommand) error {
	f.commands = append(f.commands, cmd)
	return f.err
}

func newStackHandler(reader *fakeReader, writer *fakeWriter) *StackHandler {
	return NewStackHandler(reader, writer, zap.NewNop())
}

func doRequest(t *testing.T, handler http.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestGetStacks_NegativeStackLimitNeverReachesStore(t *testing.T) {
	reader := &fakeReader{}
	h := newStackHandler(reader, &fakeWriter{})

	rec := doRequest(t, h.GetStacks, http.MethodGet, `{"stackLimit": -5}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMessage(t, rec), "stackLimit must be greater than 0")
	assert.Empty(t, reader.queries)
}

func TestGetStacks_MissingBody(t *testing.T) {
	h := newStackHandler(&fakeReader{}, &fakeWriter{})

	rec := doRequest(t, h.GetStacks, http.MethodGet, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Request body is missing.", decodeMessage(t, rec))
}

func TestGetStacks_MalformedBody(t *testing.T) {
	h := newStackHandler(&fakeReader{}, &fakeWriter{})

	rec := doRequest(t, h.GetStacks, http.MethodGet, `{"stackLimit":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Request body is not valid JSON.", decodeMessage(t, rec))
}

func TestGetStacks_DefaultsTimestamps(t *testing.T) {
	reader := &fakeReader{result: []entities.StackWithMedia{}}
	h := newStackHandler(reader, &fakeWriter{})
	fixedNow := time.Date(2023, time.June, 1, 10, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixedNow }

	rec := doRequest(t, h.GetStacks, http.MethodGet, `{"stackLimit": 2}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, reader.queries, 1)
	assert.Equal(t, int64(2), reader.queries[0].StackLimit)
	assert.Equal(t, int64(0), reader.queries[0].StartTimestamp)
	assert.Equal(t, fixedNow.UnixMilli(), reader.queries[0].EndTimestamp)
}

func TestGetStacks_EndNotAfterStart(t *testing.T) {
	reader := &fakeReader{}
	h := newStackHandler(reader, &fakeWriter{})

	rec := doRequest(t, h.GetStacks, http.MethodGet,
		`{"stackLimit": 1, "startTimestamp": 100, "endTimestamp": 50}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "endTimestamp must be greater than startTimestamp", decodeMessage(t, rec))
	assert.Empty(t, reader.queries)
}

func TestGetStacks_NegativeStartTimestamp(t *testing.T) {
	h := newStackHandler(&fakeReader{}, &fakeWriter{})

	rec := doRequest(t, h.GetStacks, http.MethodGet, `{"stackLimit": 1, "startTimestamp": -1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMessage(t, rec), "startTimestamp must be greater than or equal to 0")
}

func TestGetStacks_NotFound(t *testing.T) {
	reader := &fakeReader{err: apperrors.NewNotFoundError("stacks")}
	h := newStackHandler(reader, &fakeWriter{})

	rec := doRequest(t, h.GetStacks, http.MethodGet, `{"stackLimit": 2}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No stacks found!", decodeMessage(t, rec))
}

func TestGetStacks_DependencyFailureIsGeneric500(t *testing.T) {
	reader := &fakeReader{err: apperrors.NewDatabaseError("query media", errors.New("socket timeout"))}
	h := newStackHandler(reader, &fakeWriter{})

	rec := doRequest(t, h.GetStacks, http.MethodGet, `{"stackLimit": 2}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error.", decodeMessage(t, rec))
	assert.NotContains(t, rec.Body.String(), "socket timeout")
}

func TestGetStacks_Success(t *testing.T) {
	reader := &fakeReader{result: []entities.StackWithMedia{
		{
			Stack: entities.Stack{StackID: "s1", Caption: "one", UploadTimestamp: 100},
			Media: []entities.Media{{MediaID: "m1", StackID: "s1", MediaType: "image"}},
		},
		{
			Stack: entities.Stack{StackID: "s2", Caption: "two", UploadTimestamp: 50},
			Media: []entities.Media{},
		},
	}}
	h := newStackHandler(reader, &fakeWriter{})

	rec := doRequest(t, h.GetStacks, http.MethodGet, `{"stackLimit": 2}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body GetStacksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.StackAndMediaData, 2)
	assert.Equal(t, "s1", body.StackAndMediaData[0].Stack.StackID)
	assert.Equal(t, "s2", body.StackAndMediaData[1].Stack.StackID)
	assert.Empty(t, body.StackAndMediaData[1].Media)
}

func validSaveBody() string {
	return `{
		"stackId": "stack-1",
		"caption": "Beach day",
		"uploadTimestamp": 1700000000000,
		"location": "Lisbon",
		"media": [
			{
				"mediaId": "media-a",
				"mediaType": "image",
				"imageSrc": {
					"thumbnail": "https://cdn.example.com/a_thumb.jpg",
					"full": "https://cdn.example.com/a.jpg"
				}
			}
		]
	}`
}

func TestSaveStack_Success(t *testing.T) {
	writer := &fakeWriter{}
	h := newStackHandler(&fakeReader{}, writer)

	rec := doRequest(t, h.SaveStack, http.MethodPost, validSaveBody())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Media metadata saved successfully!", decodeMessage(t, rec))
	require.Len(t, writer.commands, 1)
	assert.Equal(t, "stack-1", writer.commands[0].StackID)
	require.Len(t, writer.commands[0].Media, 1)
	assert.Equal(t, "media-a", writer.commands[0].Media[0].MediaID)
}

func TestSaveStack_MissingCaption(t *testing.T) {
	writer := &fakeWriter{}
	h := newStackHandler(&fakeReader{}, writer)
	body := strings.Replace(validSaveBody(), `"caption": "Beach day",`, "", 1)

	rec := doRequest(t, h.SaveStack, http.MethodPost, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMessage(t, rec), "caption is required")
	assert.Empty(t, writer.commands)
}

func TestSaveStack_EmptyMedia(t *testing.T) {
	h := newStackHandler(&fakeReader{}, &fakeWriter{})
	body := `{"stackId": "s", "caption": "c", "uploadTimestamp": 1, "media": []}`

	rec := doRequest(t, h.SaveStack, http.MethodPost, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMessage(t, rec), "media must not be empty")
}

func TestSaveStack_NonHTTPSThumbnail(t *testing.T) {
	h := newStackHandler(&fakeReader{}, &fakeWriter{})
	body := strings.Replace(validSaveBody(),
		"https://cdn.example.com/a_thumb.jpg", "http://cdn.example.com/a_thumb.jpg", 1)

	rec := doRequest(t, h.SaveStack, http.MethodPost, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMessage(t, rec), "thumbnail")
}

func TestSaveStack_FutureUploadTimestamp(t *testing.T) {
	writer := &fakeWriter{}
	h := newStackHandler(&fakeReader{}, writer)
	h.now = func() time.Time { return time.UnixMilli(1600000000000) }

	rec := doRequest(t, h.SaveStack, http.MethodPost, validSaveBody())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "uploadTimestamp must not be in the future", decodeMessage(t, rec))
	assert.Empty(t, writer.commands)
}

func TestSaveStack_WriteFailure(t *testing.T) {
	writer := &fakeWriter{err: apperrors.NewDatabaseError("save stack metadata", errors.New("capacity exceeded"))}
	h := newStackHandler(&fakeReader{}, writer)

	rec := doRequest(t, h.SaveStack, http.MethodPost, validSaveBody())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to save metadata.", decodeMessage(t, rec))
	assert.NotContains(t, rec.Body.String(), "capacity exceeded")
}
