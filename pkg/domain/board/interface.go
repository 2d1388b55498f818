// Package board defines the contract for external task-board integrations.
// A board supplies card data that the core turns into tasks, and receives
// progress notifications keyed by card identifier.
package board

import (
	"net/rpc"
	"time"

	"github.com/hashicorp/go-plugin"
)

// Card is one imported board item. The complexity tag is derived from the
// card description by keyword search.
type Card struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	URL         string    `json:"url"`
	Complexity  string    `json:"complexity"`
}

// Syncer is the interface that board plugins must implement.
type Syncer interface {
	// Init ensures the plugin can connect (auth check)
	Init(config map[string]string) error

	// ImportCards fetches the board's cards for task creation
	ImportCards() ([]Card, error)

	// CreateCard mirrors a tracked task back to the board
	CreateCard(name string, estimatedPoints int, complexity string) (*Card, error)

	// PushProgress notifies the board of a progress update for a card
	PushProgress(cardID string, completedPoints float64, status string) error
}

// SyncerPlugin is the implementation of plugin.Plugin so we can serve/consume this.
type SyncerPlugin struct {
	Impl Syncer
}

func (p *SyncerPlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &SyncerRPCServer{Impl: p.Impl}, nil
}

func (p *SyncerPlugin) Client(b *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &SyncerRPCClient{Client: c}, nil
}

// RPC Client/Server wrappers
type CreateCardArgs struct {
	Name            string
	EstimatedPoints int
	Complexity      string
}

type PushProgressArgs struct {
	CardID          string
	CompletedPoints float64
	Status          string
}

type SyncerRPCClient struct{ Client *rpc.Client }

func (g *SyncerRPCClient) Init(config map[string]string) error {
	var resp interface{}
	return g.Client.Call("Plugin.Init", config, &resp)
}

func (g *SyncerRPCClient) ImportCards() ([]Card, error) {
	var resp []Card
	err := g.Client.Call("Plugin.ImportCards", new(interface{}), &resp)
	return resp, err
}

func (g *SyncerRPCClient) CreateCard(name string, estimatedPoints int, complexity string) (*Card, error) {
	var resp Card
	args := &CreateCardArgs{Name: name, EstimatedPoints: estimatedPoints, Complexity: complexity}
	err := g.Client.Call("Plugin.CreateCard", args, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *SyncerRPCClient) PushProgress(cardID string, completedPoints float64, status string) error {
	var resp interface{}
	args := &PushProgressArgs{CardID: cardID, CompletedPoints: completedPoints, Status: status}
	return g.Client.Call("Plugin.PushProgress", args, &resp)
}

type SyncerRPCServer struct{ Impl Syncer }

func (s *SyncerRPCServer) Init(config map[string]string, resp *interface{}) error {
	return s.Impl.Init(config)
}

func (s *SyncerRPCServer) ImportCards(args interface{}, resp *[]Card) error {
	cards, err := s.Impl.ImportCards()
	if cards != nil {
		*resp = cards
	}
	return err
}

func (s *SyncerRPCServer) CreateCard(args *CreateCardArgs, resp *Card) error {
	card, err := s.Impl.CreateCard(args.Name, args.EstimatedPoints, args.Complexity)
	if card != nil {
		*resp = *card
	}
	return err
}

func (s *SyncerRPCServer) PushProgress(args *PushProgressArgs, resp *interface{}) error {
	return s.Impl.PushProgress(args.CardID, args.CompletedPoints, args.Status)
}
