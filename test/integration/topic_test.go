//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"assessment-genie/internal/model"
)

func TestTopicRequestWorkflow(t *testing.T) {
	server := newTestServer(t, `{}`)
	user := signupAndLogin(t, server.URL, "someone@example.com", "Password123!")
	admin := signupAndLogin(t, server.URL, "lead@techcurators.in", "Password123!")

	createResp := postJSON(t, server.URL+"/api/v1/topic-requests", model.CreateTopicRequest{
		Topic:       "Machine Learning",
		Description: "Need questions about ML fundamentals",
	}, user.Token)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)

	var created model.TopicRequest
	decodeData(t, decodeEnvelope(t, createResp), &created)
	require.Equal(t, model.TopicStatusPending, created.Status)

	// Listing and transitions are admin-only.
	forbiddenList := getJSON(t, server.URL+"/api/v1/topic-requests", user.Token)
	require.Equal(t, http.StatusForbidden, forbiddenList.StatusCode)
	_ = forbiddenList.Body.Close()

	listResp := getJSON(t, server.URL+"/api/v1/topic-requests", admin.Token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var list model.TopicRequestList
	decodeData(t, decodeEnvelope(t, listResp), &list)
	require.Len(t, list.Requests, 1)

	forbiddenUpdate := putJSON(t, server.URL+"/api/v1/topic-requests/"+created.ID+"/status",
		model.UpdateTopicStatusRequest{Status: "approved"}, user.Token)
	require.Equal(t, http.StatusForbidden, forbiddenUpdate.StatusCode)
	_ = forbiddenUpdate.Body.Close()

	updateResp := putJSON(t, server.URL+"/api/v1/topic-requests/"+created.ID+"/status",
		model.UpdateTopicStatusRequest{Status: "approved"}, admin.Token)
	require.Equal(t, http.StatusOK, updateResp.StatusCode)

	var updated model.TopicRequest
	decodeData(t, decodeEnvelope(t, updateResp), &updated)
	require.Equal(t, model.TopicStatusApproved, updated.Status)

	missingResp := putJSON(t, server.URL+"/api/v1/topic-requests/missing-id/status",
		model.UpdateTopicStatusRequest{Status: "approved"}, admin.Token)
	require.Equal(t, http.StatusNotFound, missingResp.StatusCode)
	_ = missingResp.Body.Close()
}
