package e2e

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseURL points at a running file service, e.g. http://localhost:5000.
// The suite is skipped when E2E_BASE_URL is not set.
var baseURL = os.Getenv("E2E_BASE_URL")

func requireService(t *testing.T) *http.Client {
	t.Helper()
	if baseURL == "" {
		t.Skip("E2E_BASE_URL not set")
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func bearerToken() string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"userId":"e2e-user"}`))
	return "Bearer header." + payload + ".sig"
}

func TestFileFullWorkflow(t *testing.T) {
	client := requireService(t)

	customID := fmt.Sprintf("e2e-%d", time.Now().UnixNano())

	// 1. Upload
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "e2e.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("end to end payload"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("name", "e2e file"))
	require.NoError(t, writer.WriteField("description", "created by the e2e suite"))
	require.NoError(t, writer.WriteField("custom_id", customID))
	writer.Close()

	req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/files", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", bearerToken())

	resp, err := client.Do(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Size int64  `json:"size"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, customID, created.ID)
	assert.Equal(t, int64(len("end to end payload")), created.Size)

	// 2. List until the new entity shows up
	req, _ = http.NewRequest(http.MethodGet, baseURL+"/api/files?page=1&limit=100", nil)
	req.Header.Set("Authorization", bearerToken())

	resp, err = client.Do(req)
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var listing struct {
		Files []struct {
			ID string `json:"id"`
		} `json:"files"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(raw, &listing))
	found := false
	for _, f := range listing.Files {
		if f.ID == customID {
			found = true
		}
	}
	assert.True(t, found, "uploaded file missing from listing")

	// 3. Update the description
	updateBody, _ := json.Marshal(map[string]string{"description": "updated by the e2e suite"})
	req, _ = http.NewRequest(http.MethodPut, baseURL+"/api/files/"+customID, bytes.NewReader(updateBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken())

	resp, err = client.Do(req)
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var updated struct {
		Description string `json:"description"`
		Name        string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "updated by the e2e suite", updated.Description)
	assert.Equal(t, "e2e file", updated.Name)

	// 4. Delete and verify it is gone
	req, _ = http.NewRequest(http.MethodDelete, baseURL+"/api/files/"+customID, nil)
	req.Header.Set("Authorization", bearerToken())

	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	req, _ = http.NewRequest(http.MethodDelete, baseURL+"/api/files/"+customID, nil)
	req.Header.Set("Authorization", bearerToken())

	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRejectsAnonymousRequests(t *testing.T) {
	client := requireService(t)

	req, _ := http.NewRequest(http.MethodGet, baseURL+"/api/files", nil)

	resp, err := client.Do(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, string(raw))
}
