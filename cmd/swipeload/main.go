// Package main drives concurrent mutual swipes against a running API and
// checks that every pair ends up matched and notified.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Metrics tracks the run results
type Metrics struct {
	UsersRegistered  int64
	SocketsOpen      int64
	SwipesSent       int64
	SwipesFailed     int64
	MatchesReturned  int64
	MatchEventsRecvd int64
	Errors           int64
}

var (
	metrics    Metrics
	httpClient = &http.Client{Timeout: 10 * time.Second}
)

type loadUser struct {
	ID    string
	Token string
}

func main() {
	host := flag.String("host", "localhost:8080", "API server host")
	users := flag.Int("users", 20, "Number of users; every pair swipes on each other")
	wait := flag.Duration("wait", 5*time.Second, "How long to wait for trailing events")
	flag.Parse()

	if *users < 2 {
		log.Fatal("need at least 2 users")
	}

	log.Printf("Starting swipe load: %d users against %s", *users, *host)
	run := time.Now().UnixNano()

	accounts := make([]loadUser, *users)
	for i := range accounts {
		u, err := register(*host, fmt.Sprintf("load-%d-%d@example.com", run, i), fmt.Sprintf("Load User %d", i))
		if err != nil {
			log.Fatalf("register user %d: %v", i, err)
		}
		accounts[i] = u
		atomic.AddInt64(&metrics.UsersRegistered, 1)
	}

	stop := make(chan struct{})
	var listeners sync.WaitGroup
	for _, u := range accounts {
		ticket, err := getTicket(*host, u.Token)
		if err != nil {
			atomic.AddInt64(&metrics.Errors, 1)
			continue
		}
		listeners.Add(1)
		go listen(*host, ticket, stop, &listeners)
	}

	start := time.Now()
	var swipers sync.WaitGroup
	for i, swiper := range accounts {
		swipers.Add(1)
		go func(i int, swiper loadUser) {
			defer swipers.Done()
			for j, target := range accounts {
				if i == j {
					continue
				}
				matched, err := swipe(*host, swiper.Token, target.ID)
				if err != nil {
					atomic.AddInt64(&metrics.SwipesFailed, 1)
					continue
				}
				atomic.AddInt64(&metrics.SwipesSent, 1)
				if matched {
					atomic.AddInt64(&metrics.MatchesReturned, 1)
				}
			}
		}(i, swiper)
	}
	swipers.Wait()
	elapsed := time.Since(start)

	time.Sleep(*wait)
	close(stop)
	listeners.Wait()

	printMetrics(*users, elapsed)
}

func postJSON(host, path, token string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("http://%s%s", host, path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s failed with status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func register(host, email, name string) (loadUser, error) {
	var result struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	err := postJSON(host, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "load-test-password",
		"name":     name,
	}, &result)
	return loadUser{ID: result.User.ID, Token: result.Token}, err
}

func getTicket(host, token string) (string, error) {
	var result struct {
		Ticket string `json:"ticket"`
	}
	if err := postJSON(host, "/api/ws/ticket", token, struct{}{}, &result); err != nil {
		return "", err
	}
	return result.Ticket, nil
}

func swipe(host, token, targetID string) (bool, error) {
	var result struct {
		Match *struct {
			IsNew bool `json:"isNew"`
		} `json:"match"`
	}
	err := postJSON(host, "/api/swipe", token, map[string]string{
		"targetType": "PERSON",
		"targetId":   targetID,
		"direction":  "RIGHT",
	}, &result)
	if err != nil {
		return false, err
	}
	return result.Match != nil && result.Match.IsNew, nil
}

func listen(host, ticket string, stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	u := url.URL{Scheme: "ws", Host: host, Path: "/api/ws", RawQuery: "ticket=" + ticket}
	c, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		atomic.AddInt64(&metrics.Errors, 1)
		return
	}
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	defer func() { _ = c.Close() }()
	atomic.AddInt64(&metrics.SocketsOpen, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				return
			}
			var event struct {
				Type string `json:"type"`
			}
			if json.Unmarshal(raw, &event) == nil && event.Type == "match_created" {
				atomic.AddInt64(&metrics.MatchEventsRecvd, 1)
			}
		}
	}()

	select {
	case <-stop:
		_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	case <-done:
	}
}

func printMetrics(users int, elapsed time.Duration) {
	pairs := int64(users * (users - 1) / 2)

	log.Println("==================================")
	log.Printf("Users registered:    %d", metrics.UsersRegistered)
	log.Printf("Sockets open:        %d", metrics.SocketsOpen)
	log.Printf("Swipes sent:         %d (%.1f/s)", metrics.SwipesSent, float64(metrics.SwipesSent)/elapsed.Seconds())
	log.Printf("Swipes failed:       %d", metrics.SwipesFailed)
	log.Printf("Matches returned:    %d / %d pairs", metrics.MatchesReturned, pairs)
	log.Printf("Match events:        %d / %d expected", metrics.MatchEventsRecvd, pairs*2)
	log.Printf("Errors:              %d", metrics.Errors)
	log.Println("==================================")

	if metrics.MatchesReturned != pairs {
		log.Printf("MISMATCH: expected exactly one new match per pair")
	}
}
