package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/felixgeelhaar/burndown/pkg/domain/board"
	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
	infraPlugin "github.com/felixgeelhaar/burndown/pkg/plugin"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/hashicorp/go-plugin"
)

var trelloBaseURL = "https://api.trello.com/1"

// TrelloSyncer syncs project tasks with a Trello board.
type TrelloSyncer struct {
	apiKey     string
	token      string
	boardID    string
	todoListID string
	doneListID string
	client     *http.Client
	retryer    retry.Retry[[]byte]
	lists      map[string]TrelloList // cached lists
}

// TrelloList represents a Trello list.
type TrelloList struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TrelloCard represents a Trello card.
type TrelloCard struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Desc    string `json:"desc"`
	IDList  string `json:"idList"`
	URL     string `json:"url"`
	Due     string `json:"due"`
	ShortID int    `json:"idShort"`
}

func (s *TrelloSyncer) Init(config map[string]string) error {
	s.apiKey = config["api_key"]
	s.token = config["token"]
	s.boardID = config["board_id"]
	s.todoListID = config["todo_list_id"]
	s.doneListID = config["done_list_id"]

	// Fallback to env vars
	if s.apiKey == "" {
		s.apiKey = os.Getenv("TRELLO_API_KEY")
	}
	if s.token == "" {
		s.token = os.Getenv("TRELLO_TOKEN")
	}
	if s.boardID == "" {
		s.boardID = os.Getenv("TRELLO_BOARD_ID")
	}
	if s.todoListID == "" {
		s.todoListID = os.Getenv("TRELLO_TODO_LIST_ID")
	}
	if s.doneListID == "" {
		s.doneListID = os.Getenv("TRELLO_DONE_LIST_ID")
	}

	if s.apiKey == "" {
		return fmt.Errorf("trello api_key is required (config 'api_key' or env TRELLO_API_KEY)")
	}
	if s.token == "" {
		return fmt.Errorf("trello token is required (config 'token' or env TRELLO_TOKEN)")
	}
	if s.boardID == "" {
		return fmt.Errorf("trello board_id is required (config 'board_id' or env TRELLO_BOARD_ID)")
	}

	s.client = &http.Client{Timeout: 30 * time.Second}
	s.retryer = retry.New[[]byte](retry.Config{
		MaxAttempts:   3,
		InitialDelay:  200 * time.Millisecond,
		BackoffPolicy: retry.BackoffExponential,
	})
	s.lists = make(map[string]TrelloList)

	// Load and cache lists
	if err := s.loadLists(context.Background()); err != nil {
		return fmt.Errorf("load lists: %w", err)
	}

	return nil
}

func (s *TrelloSyncer) buildURL(endpoint string, params map[string]string) string {
	u := trelloBaseURL + endpoint
	v := url.Values{}
	v.Set("key", s.apiKey)
	v.Set("token", s.token)
	for k, val := range params {
		v.Set(k, val)
	}
	return u + "?" + v.Encode()
}

func (s *TrelloSyncer) do(ctx context.Context, method, endpoint string, params map[string]string) ([]byte, error) {
	return s.retryer.Do(ctx, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, method, s.buildURL(endpoint, params), nil)
		if err != nil {
			return nil, err
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("trello API error (%d): %s", resp.StatusCode, string(body))
		}

		return body, nil
	})
}

func (s *TrelloSyncer) loadLists(ctx context.Context) error {
	body, err := s.do(ctx, "GET", "/boards/"+s.boardID+"/lists", nil)
	if err != nil {
		return err
	}

	var lists []TrelloList
	if err := json.Unmarshal(body, &lists); err != nil {
		return err
	}

	for _, list := range lists {
		s.lists[list.ID] = list
		// Auto-detect todo/done lists by name if not configured
		lowerName := strings.ToLower(list.Name)
		if s.todoListID == "" && (lowerName == "to do" || lowerName == "todo" || lowerName == "backlog") {
			s.todoListID = list.ID
		}
		if s.doneListID == "" && (lowerName == "done" || lowerName == "complete" || lowerName == "completed") {
			s.doneListID = list.ID
		}
	}

	return nil
}

func (s *TrelloSyncer) getCards(ctx context.Context) ([]TrelloCard, error) {
	body, err := s.do(ctx, "GET", "/boards/"+s.boardID+"/cards", map[string]string{
		"fields": "id,name,desc,idList,url,due,idShort",
	})
	if err != nil {
		return nil, err
	}

	var cards []TrelloCard
	if err := json.Unmarshal(body, &cards); err != nil {
		return nil, err
	}

	return cards, nil
}

// ImportCards fetches the board's cards with a complexity tag derived from
// each card description.
func (s *TrelloSyncer) ImportCards() ([]board.Card, error) {
	ctx := context.Background()
	log.Printf("Trello Syncer: Importing cards from board %s", s.boardID)

	cards, err := s.getCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("get cards: %w", err)
	}

	out := make([]board.Card, 0, len(cards))
	for _, c := range cards {
		card := board.Card{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Desc,
			URL:         c.URL,
			Complexity:  string(burndown.DetectComplexity(c.Desc)),
		}
		if c.Due != "" {
			if due, err := time.Parse(time.RFC3339, c.Due); err == nil {
				card.DueDate = due
			}
		}
		out = append(out, card)
	}
	return out, nil
}

// CreateCard mirrors a tracked task to the board with an estimate block in
// the description and a burndown-id marker for later lookups.
func (s *TrelloSyncer) CreateCard(name string, estimatedPoints int, complexity string) (*board.Card, error) {
	ctx := context.Background()
	log.Printf("Trello Syncer: Creating card %q on board %s", name, s.boardID)

	desc := fmt.Sprintf("Burndown Task Details:\n- Estimated Points: %d\n- Complexity: %s", estimatedPoints, complexity)

	listID := s.todoListID
	if listID == "" {
		// Use first list if todo list not configured
		for id := range s.lists {
			listID = id
			break
		}
	}

	body, err := s.do(ctx, "POST", "/cards", map[string]string{
		"name":   name,
		"desc":   desc,
		"idList": listID,
	})
	if err != nil {
		return nil, err
	}

	var card TrelloCard
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, err
	}

	return &board.Card{
		ID:          card.ID,
		Name:        card.Name,
		Description: card.Desc,
		URL:         card.URL,
		Complexity:  complexity,
	}, nil
}

// PushProgress appends a progress block to the card description and moves
// the card to the done list when the task has been completed.
func (s *TrelloSyncer) PushProgress(cardID string, completedPoints float64, status string) error {
	ctx := context.Background()
	log.Printf("Trello Syncer: Pushing %.1f completed points for card %s (status %s)", completedPoints, cardID, status)

	body, err := s.do(ctx, "GET", "/cards/"+cardID, map[string]string{
		"fields": "id,desc,idList,idShort",
	})
	if err != nil {
		return fmt.Errorf("get card: %w", err)
	}

	var card TrelloCard
	if err := json.Unmarshal(body, &card); err != nil {
		return err
	}

	updatedDesc := fmt.Sprintf("%s\n\nProgress Update:\n- Completed Points: %.1f\n- Status: %s", card.Desc, completedPoints, status)
	params := map[string]string{"desc": updatedDesc}

	if status == string(burndown.StatusCompleted) && s.doneListID != "" && card.IDList != s.doneListID {
		params["idList"] = s.doneListID
		log.Printf("Trello Syncer: Moving card #%d to the done list", card.ShortID)
	}

	if _, err := s.do(ctx, "PUT", "/cards/"+cardID, params); err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	return nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: infraPlugin.HandshakeConfig,
		Plugins: map[string]plugin.Plugin{
			"syncer": &board.SyncerPlugin{Impl: &TrelloSyncer{}},
		},
	})
}
