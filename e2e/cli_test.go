package e2e_test

import (
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcullen/arcadehub/internal/api"
	"github.com/tcullen/arcadehub/internal/factory"
	"github.com/tcullen/arcadehub/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "arcade-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/arcade")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)
	go app.EventHub.Run()

	logger := testutil.NopLogger()

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		CatalogService:     app.CatalogService,
		SessionManager:     app.SessionManager,
		ScoringService:     app.ScoringService,
		LeaderboardService: app.LeaderboardService,
		ProgressService:    app.ProgressService,
		EventHub:           app.EventHub,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			_ = server.Close()
			app.SessionManager.CloseAll()
			app.EventHub.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	} `json:"player"`
	SessionToken string `json:"session_token"`
}

type gameListResponse struct {
	Games []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
	} `json:"games"`
}

type sessionResponse struct {
	ID     string         `json:"id"`
	GameID string         `json:"game_id"`
	State  map[string]any `json:"state"`
}

type scoreHistoryResponse struct {
	Scores []struct {
		GameID string `json:"game_id"`
		Points int    `json:"points"`
	} `json:"scores"`
	TotalPoints int `json:"total_points"`
}

type leaderboardResponse struct {
	Entries []struct {
		Rank        int    `json:"rank"`
		PlayerID    string `json:"player_id"`
		DisplayName string `json:"display_name"`
		TotalPoints int    `json:"total_points"`
	} `json:"entries"`
}

type progressResponse struct {
	TotalPoints int    `json:"total_points"`
	Level       string `json:"level"`
	Wins        int    `json:"wins"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create guest
	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.True(t, authResp.Player.IsGuest)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.DisplayName)
	assert.Equal(t, authResp.Player.ID, player.ID)

	// Update profile
	output, err = cli.run("player", "update", "--name", "Alicia", "--avatar", "cat")
	require.NoError(t, err, "output: %s", output)

	var updated struct {
		DisplayName string `json:"display_name"`
		Avatar      string `json:"avatar"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &updated))
	assert.Equal(t, "Alicia", updated.DisplayName)
	assert.Equal(t, "cat", updated.Avatar)
}

func TestCLI_GamesCatalog(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("games", "list")
	require.NoError(t, err, "output: %s", output)

	var list gameListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	assert.Len(t, list.Games, 8)

	ids := make([]string, len(list.Games))
	for i, g := range list.Games {
		ids[i] = g.ID
	}
	assert.Contains(t, ids, "tic-tac-toe")
	assert.Contains(t, ids, "number-guesser")
	assert.Contains(t, ids, "snake-game")

	// Show one entry
	output, err = cli.run("games", "show", "number-guesser")
	require.NoError(t, err, "output: %s", output)

	var game struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "Number Guesser", game.Title)
}

func TestCLI_FullPlayFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create a guest player
	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))
	token := auth.SessionToken

	// Start a number guesser session
	output, err = cli.runWithToken(token, "play", "start", "number-guesser")
	require.NoError(t, err, "output: %s", output)
	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "number-guesser", session.GameID)
	assert.Equal(t, "playing", session.State["state"])
	sessionID := session.ID
	t.Logf("Started session: %s", sessionID)

	// The target is hidden, but the hints make binary search on [1, 100]
	// win within the seven-attempt budget
	lo, hi := 1, 100
	won := false
	for attempt := 0; attempt < 7; attempt++ {
		mid := (lo + hi) / 2
		output, err = cli.runWithToken(token, "play", "input", sessionID,
			"--action", "guess", "--text", strconv.Itoa(mid))
		require.NoError(t, err, "attempt %d: %s", attempt, output)
		require.NoError(t, json.Unmarshal([]byte(output), &session))

		state, _ := session.State["state"].(string)
		t.Logf("Guessed %d, state: %s", mid, state)
		if state == "won" {
			won = true
			break
		}
		hint, _ := session.State["hint"].(string)
		if strings.Contains(hint, "higher") {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	require.True(t, won, "binary search should find the target within 7 guesses")

	// The win should have landed in the score history
	output, err = cli.runWithToken(token, "scores")
	require.NoError(t, err, "output: %s", output)
	var history scoreHistoryResponse
	require.NoError(t, json.Unmarshal([]byte(output), &history))
	require.Len(t, history.Scores, 1)
	assert.Equal(t, "number-guesser", history.Scores[0].GameID)
	assert.Greater(t, history.Scores[0].Points, 0)
	assert.Equal(t, history.Scores[0].Points, history.TotalPoints)

	// And on the leaderboard
	output, err = cli.runWithToken(token, "leaderboard")
	require.NoError(t, err, "output: %s", output)
	var board leaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	require.Len(t, board.Entries, 1)
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Equal(t, "Alice", board.Entries[0].DisplayName)

	// And in progress
	output, err = cli.runWithToken(token, "progress")
	require.NoError(t, err, "output: %s", output)
	var progress progressResponse
	require.NoError(t, json.Unmarshal([]byte(output), &progress))
	assert.Equal(t, history.TotalPoints, progress.TotalPoints)
	assert.Equal(t, 1, progress.Wins)

	// End the session
	output, err = cli.runWithToken(token, "play", "end", sessionID)
	require.NoError(t, err, "output: %s", output)
}

func TestCLI_AnonymousPlay(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Start a session with no token at all
	output, err := cli.run("play", "start", "tic-tac-toe")
	require.NoError(t, err, "output: %s", output)
	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "tic-tac-toe", session.GameID)

	// Place a mark
	output, err = cli.run("play", "input", session.ID, "--action", "place", "--index", "4")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &session))

	board, ok := session.State["board"].([]any)
	require.True(t, ok)
	assert.Equal(t, "X", board[4])

	// Nothing lands on the leaderboard for anonymous play
	output, err = cli.run("leaderboard")
	require.NoError(t, err, "output: %s", output)
	var lb leaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &lb))
	assert.Empty(t, lb.Entries)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get player without auth
	output, err := cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")

	// Unknown game
	output, err = cli.run("games", "show", "pinball")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	// Unknown session
	output, err = cli.run("play", "show", "nope")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
