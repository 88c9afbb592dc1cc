package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	resp, err := http.Get(testServer.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]string
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	assert.Equal(t, "ok", result["status"])
}

func TestE2E_RegisterFlow(t *testing.T) {
	email := fmt.Sprintf("register_%d@example.com", time.Now().UnixNano())

	// 1. Регистрация
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": "secret123",
		"name":     "Register Flow",
	})
	resp, err := http.Post(testServer.URL+"/api/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var registerResp map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registerResp))
	assert.Contains(t, registerResp, "user")

	// 2. Повторная регистрация с тем же email
	body, _ = json.Marshal(map[string]string{
		"email":    email,
		"password": "secret123",
		"name":     "Register Flow",
	})
	resp, err = http.Post(testServer.URL+"/api/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// 3. Вход с неверным паролем
	body, _ = json.Marshal(map[string]string{
		"email":    email,
		"password": "wrong-password",
	})
	resp, err = http.Post(testServer.URL+"/api/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// 4. Вход с верным паролем
	body, _ = json.Marshal(map[string]string{
		"email":    email,
		"password": "secret123",
	})
	resp, err = http.Post(testServer.URL+"/api/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	assert.NotEmpty(t, loginResp["token"])
}

func TestE2E_SeededWorkspace(t *testing.T) {
	email := fmt.Sprintf("seeded_%d@example.com", time.Now().UnixNano())
	token := registerAndLogin(t, email, "secret123", "Seeded User")

	// Новый аккаунт приходит с шестью стартовыми задачами
	resp, result := doRequest(t, http.MethodGet, "/api/issues", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	issues, ok := result["issues"].([]interface{})
	require.True(t, ok)
	assert.Len(t, issues, 6)

	titles := make(map[string]bool)
	for _, raw := range issues {
		issue := raw.(map[string]interface{})
		titles[issue["title"].(string)] = true
	}
	assert.True(t, titles["Implement user authentication"])
	assert.True(t, titles["Deploy to production"])
}

func TestE2E_IssueFlow(t *testing.T) {
	email := fmt.Sprintf("issues_%d@example.com", time.Now().UnixNano())
	token := registerAndLogin(t, email, "secret123", "Issue User")

	// 1. Создание задачи: статус и приоритет по умолчанию
	resp, created := doRequest(t, http.MethodPost, "/api/issues", token, map[string]string{
		"title": "Ship the release",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Backlog", created["status"])
	assert.Equal(t, "MEDIUM", created["priority"])

	issueId := created["id"].(string)
	require.NotEmpty(t, issueId)

	// 2. Частичное обновление
	resp, updated := doRequest(t, http.MethodPut, "/api/issues/"+issueId, token, map[string]string{
		"priority": "HIGH",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "HIGH", updated["priority"])
	assert.Equal(t, "Ship the release", updated["title"])

	// 3. Неизвестный приоритет
	resp, _ = doRequest(t, http.MethodPut, "/api/issues/"+issueId, token, map[string]string{
		"priority": "URGENT",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// 4. Мягкое удаление убирает задачу из выдачи
	resp, _ = doRequest(t, http.MethodDelete, "/api/issues/"+issueId, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, listed := doRequest(t, http.MethodGet, "/api/issues", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, raw := range listed["issues"].([]interface{}) {
		issue := raw.(map[string]interface{})
		assert.NotEqual(t, issueId, issue["id"])
	}

	// 5. Обновление удаленной задачи
	resp, _ = doRequest(t, http.MethodPut, "/api/issues/"+issueId, token, map[string]string{
		"title": "Resurrect",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestE2E_BoardFlow(t *testing.T) {
	email := fmt.Sprintf("board_%d@example.com", time.Now().UnixNano())
	token := registerAndLogin(t, email, "secret123", "Board User")

	// 1. Доска: три колонки в фиксированном порядке
	resp, boardResp := doRequest(t, http.MethodGet, "/api/board", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	columns := boardResp["columns"].([]interface{})
	require.Len(t, columns, 3)
	assert.Equal(t, "Backlog", columns[0].(map[string]interface{})["status"])
	assert.Equal(t, "In Progress", columns[1].(map[string]interface{})["status"])
	assert.Equal(t, "Done", columns[2].(map[string]interface{})["status"])

	backlog := columns[0].(map[string]interface{})["issues"].([]interface{})
	require.NotEmpty(t, backlog)
	issueId := backlog[0].(map[string]interface{})["id"].(string)

	// 2. Перенос в Done
	resp, moveResp := doRequest(t, http.MethodPost, "/api/board/move", token, map[string]string{
		"issue_id": issueId,
		"over_id":  "Done",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, moveResp["moved"])
	assert.Equal(t, "Done", moveResp["status"])

	// 3. Повторный сброс в ту же колонку - no-op
	resp, moveResp = doRequest(t, http.MethodPost, "/api/board/move", token, map[string]string{
		"issue_id": issueId,
		"over_id":  "Done",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, moveResp["moved"])

	// 4. Неразрешимая цель - тоже no-op
	resp, moveResp = doRequest(t, http.MethodPost, "/api/board/move", token, map[string]string{
		"issue_id": issueId,
		"over_id":  "no-such-column",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, moveResp["moved"])

	// 5. Доска отражает перенос
	resp, boardResp = doRequest(t, http.MethodGet, "/api/board", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	done := boardResp["columns"].([]interface{})[2].(map[string]interface{})["issues"].([]interface{})
	found := false
	for _, raw := range done {
		if raw.(map[string]interface{})["id"] == issueId {
			found = true
		}
	}
	assert.True(t, found)
}

func TestE2E_ProfileFlow(t *testing.T) {
	email := fmt.Sprintf("profile_%d@example.com", time.Now().UnixNano())
	token := registerAndLogin(t, email, "secret123", "Profile User")

	// 1. Обновление имени и аватара
	resp, result := doRequest(t, http.MethodPut, "/api/profile", token, map[string]string{
		"name":         "Renamed User",
		"profileImage": "https://cdn.example/avatar.png",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := result["user"].(map[string]interface{})
	assert.Equal(t, "Renamed User", user["name"])

	// 2. Пустое имя отклоняется
	resp, _ = doRequest(t, http.MethodPut, "/api/profile", token, map[string]string{
		"name": "",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// 3. У аккаунта с паролем hasPassword = true
	resp, result = doRequest(t, http.MethodGet, "/api/profile/check-password", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, result["hasPassword"])

	// 4. Смена пароля с неверным текущим
	resp, _ = doRequest(t, http.MethodPut, "/api/profile/password", token, map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "next-secret",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// 5. Успешная смена и вход с новым паролем
	resp, _ = doRequest(t, http.MethodPut, "/api/profile/password", token, map[string]string{
		"currentPassword": "secret123",
		"newPassword":     "next-secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": "next-secret",
	})
	loginResp, err := http.Post(testServer.URL+"/api/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer loginResp.Body.Close()
	assert.Equal(t, http.StatusOK, loginResp.StatusCode)

	// Старый пароль больше не подходит
	body, _ = json.Marshal(map[string]string{
		"email":    email,
		"password": "secret123",
	})
	loginResp, err = http.Post(testServer.URL+"/api/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer loginResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, loginResp.StatusCode)
}

func TestE2E_SummaryFlow(t *testing.T) {
	email := fmt.Sprintf("summary_%d@example.com", time.Now().UnixNano())
	token := registerAndLogin(t, email, "secret123", "Summary User")

	// 1. С задачами сводка приходит от upstream
	resp, result := doRequest(t, http.MethodPost, "/api/ai/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Test summary of the project.", result["summary"])

	// 2. Без задач - фиксированный ответ
	resp, listed := doRequest(t, http.MethodGet, "/api/issues", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, raw := range listed["issues"].([]interface{}) {
		issueId := raw.(map[string]interface{})["id"].(string)
		resp, _ = doRequest(t, http.MethodDelete, "/api/issues/"+issueId, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, result = doRequest(t, http.MethodPost, "/api/ai/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "You don't have any issues yet. Create some issues to get an AI summary!", result["summary"])
}

func TestE2E_Unauthorized(t *testing.T) {
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/issues"},
		{http.MethodGet, "/api/board"},
		{http.MethodPut, "/api/profile"},
		{http.MethodPost, "/api/ai/summary"},
	}

	for _, p := range paths {
		resp, result := doRequest(t, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", p.method, p.path)
		errObj := result["error"].(map[string]interface{})
		assert.Equal(t, "UNAUTHORIZED", errObj["code"])
	}

	// Мусорный токен тоже отклоняется
	resp, _ := doRequest(t, http.MethodGet, "/api/issues", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestE2E_IsolationBetweenUsers(t *testing.T) {
	emailA := fmt.Sprintf("alice_%d@example.com", time.Now().UnixNano())
	emailB := fmt.Sprintf("bob_%d@example.com", time.Now().UnixNano())
	tokenA := registerAndLogin(t, emailA, "secret123", "Alice")
	tokenB := registerAndLogin(t, emailB, "secret123", "Bob")

	// Задача Алисы
	resp, created := doRequest(t, http.MethodPost, "/api/issues", tokenA, map[string]string{
		"title": "Alice private issue",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	issueId := created["id"].(string)

	// Боб ее не видит и не может менять
	resp, listed := doRequest(t, http.MethodGet, "/api/issues", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, raw := range listed["issues"].([]interface{}) {
		assert.NotEqual(t, issueId, raw.(map[string]interface{})["id"])
	}

	resp, _ = doRequest(t, http.MethodPut, "/api/issues/"+issueId, tokenB, map[string]string{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodDelete, "/api/issues/"+issueId, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
