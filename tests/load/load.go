package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	baseURL      = "http://localhost:8080"
	targetRPS    = 5
	testDuration = 30 * time.Second
)

var rng *rand.Rand

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateIssueRequest struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

type MoveIssueRequest struct {
	IssueId string `json:"issue_id"`
	OverId  string `json:"over_id"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run load.go <scenario>")
		fmt.Println("Scenarios: health, issues, board, all")
		os.Exit(1)
	}

	scenario := os.Args[1]
	rng = rand.New(rand.NewSource(time.Now().UnixNano()))

	var metrics vegeta.Metrics
	var err error

	switch scenario {
	case "health":
		metrics, err = testHealth()
	case "issues":
		metrics, err = testIssues()
	case "board":
		metrics, err = testBoard()
	case "all":
		metrics, err = testAll()
	default:
		fmt.Printf("Unknown scenario: %s\n", scenario)
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	printMetrics(metrics)
}

func testHealth() (vegeta.Metrics, error) {
	targeter := vegeta.NewStaticTargeter(vegeta.Target{
		Method: "GET",
		URL:    baseURL + "/health",
	})

	return runAttack(targeter, "Health Check")
}

func testIssues() (vegeta.Metrics, error) {
	token, err := setupUser()
	if err != nil {
		return vegeta.Metrics{}, err
	}

	targeter := vegeta.NewStaticTargeter(
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/api/issues",
			Header: authHeader(token),
		},
		vegeta.Target{
			Method: "POST",
			URL:    baseURL + "/api/issues",
			Body:   createIssueBody(fmt.Sprintf("load issue %d", rng.Intn(100000))),
			Header: authHeader(token),
		},
	)

	return runAttack(targeter, "Issue Operations")
}

func testBoard() (vegeta.Metrics, error) {
	token, err := setupUser()
	if err != nil {
		return vegeta.Metrics{}, err
	}

	issueId, err := firstIssueId(token)
	if err != nil {
		return vegeta.Metrics{}, err
	}

	targeter := vegeta.NewStaticTargeter(
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/api/board",
			Header: authHeader(token),
		},
		vegeta.Target{
			Method: "POST",
			URL:    baseURL + "/api/board/move",
			Body:   moveIssueBody(issueId, "In Progress"),
			Header: authHeader(token),
		},
		vegeta.Target{
			Method: "POST",
			URL:    baseURL + "/api/board/move",
			Body:   moveIssueBody(issueId, "Done"),
			Header: authHeader(token),
		},
	)

	return runAttack(targeter, "Board Operations")
}

func testAll() (vegeta.Metrics, error) {
	token, err := setupUser()
	if err != nil {
		return vegeta.Metrics{}, err
	}

	targeter := vegeta.NewStaticTargeter(
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/health",
		},
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/api/issues",
			Header: authHeader(token),
		},
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/api/board",
			Header: authHeader(token),
		},
		vegeta.Target{
			Method: "POST",
			URL:    baseURL + "/api/issues",
			Body:   createIssueBody(fmt.Sprintf("load issue %d", rng.Intn(100000))),
			Header: authHeader(token),
		},
	)

	return runAttack(targeter, "All Endpoints")
}

func runAttack(targeter vegeta.Targeter, name string) (vegeta.Metrics, error) {
	rate := vegeta.Rate{Freq: targetRPS, Per: time.Second}
	attacker := vegeta.NewAttacker()

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, rate, testDuration, name) {
		metrics.Add(res)
	}
	metrics.Close()

	return metrics, nil
}

// setupUser регистрирует пользователя для нагрузки и возвращает токен
func setupUser() (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	email := fmt.Sprintf("load_%d@example.com", rng.Intn(1000000))

	body, _ := json.Marshal(RegisterRequest{
		Email:    email,
		Password: "load-secret",
		Name:     "Load User",
	})
	resp, err := client.Post(baseURL+"/api/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("register failed: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("register returned status %d", resp.StatusCode)
	}

	body, _ = json.Marshal(LoginRequest{Email: email, Password: "load-secret"})
	resp, err = client.Post(baseURL+"/api/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	return loginResp.Token, nil
}

func firstIssueId(token string) (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	req, _ := http.NewRequest("GET", baseURL+"/api/issues", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("list issues failed: %w", err)
	}
	defer resp.Body.Close()

	var listResp struct {
		Issues []struct {
			Id string `json:"id"`
		} `json:"issues"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return "", fmt.Errorf("decode issues: %w", err)
	}
	if len(listResp.Issues) == 0 {
		return "", fmt.Errorf("no issues to move")
	}
	return listResp.Issues[0].Id, nil
}

func authHeader(token string) http.Header {
	return http.Header{
		"Content-Type":  []string{"application/json"},
		"Authorization": []string{"Bearer " + token},
	}
}

func createIssueBody(title string) []byte {
	body, _ := json.Marshal(CreateIssueRequest{
		Title:    title,
		Priority: "MEDIUM",
	})
	return body
}

func moveIssueBody(issueId, overId string) []byte {
	body, _ := json.Marshal(MoveIssueRequest{
		IssueId: issueId,
		OverId:  overId,
	})
	return body
}

func printMetrics(metrics vegeta.Metrics) {
	fmt.Println("=== Load Test Results ===")
	fmt.Printf("Requests:      %d\n", metrics.Requests)
	fmt.Printf("Rate:          %.2f req/s\n", metrics.Rate)
	fmt.Printf("Duration:      %s\n", metrics.Duration)
	fmt.Printf("Success:       %.2f%%\n", metrics.Success*100)
	fmt.Printf("Latency p50:   %s\n", metrics.Latencies.P50)
	fmt.Printf("Latency p95:   %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency p99:   %s\n", metrics.Latencies.P99)
	fmt.Printf("Latency max:   %s\n", metrics.Latencies.Max)
	if len(metrics.Errors) > 0 {
		fmt.Println("Errors:")
		for _, e := range metrics.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
}
