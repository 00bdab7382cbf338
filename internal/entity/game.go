package entity

import (
	"slices"
	"sort"
	"time"
)

const (
	MaxPlayers   = 2
	GameIDLength = 6

	CreatorSeat = 1
	JoinerSeat  = 2
)

type PlayerState struct {
	Name   string `json:"name"`
	Seat   int    `json:"seat"`
	Board  Board  `json:"board"`
	Marked Marked `json:"marked"`
}

type Game struct {
	ID            string                  `json:"gameId"`
	Players       map[string]*PlayerState `json:"players"`
	CalledNumbers []int                   `json:"calledNumbers"`
	CurrentPlayer string                  `json:"currentPlayer,omitempty"`
	Winner        string                  `json:"winner,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
}

func NewGame(id, creatorID string, creator *PlayerState) *Game {
	return &Game{
		ID:            id,
		Players:       map[string]*PlayerState{creatorID: creator},
		CalledNumbers: []int{},
		CurrentPlayer: creatorID,
	}
}

func (that *Game) Player(id string) (*PlayerState, bool) {
	player, ok := that.Players[id]
	return player, ok
}

func (that *Game) HasPlayer(id string) bool {
	_, ok := that.Players[id]
	return ok
}

func (that *Game) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

func (that *Game) IsFinished() bool {
	return that.Winner != ""
}

func (that *Game) IsCalled(number int) bool {
	return slices.Contains(that.CalledNumbers, number)
}

// PlayerIDs returns the player ids in join order.
func (that *Game) PlayerIDs() []string {
	ids := make([]string, 0, len(that.Players))
	for id := range that.Players {
		ids = append(ids, id)
	}

	sort.SliceStable(ids, func(i, j int) bool {
		left, right := that.Players[ids[i]], that.Players[ids[j]]
		if left.Seat != right.Seat {
			return left.Seat < right.Seat
		}
		return ids[i] < ids[j]
	})

	return ids
}

// Opponent returns the id of the other player, if one has joined.
func (that *Game) Opponent(playerID string) (string, bool) {
	for id := range that.Players {
		if id != playerID {
			return id, true
		}
	}

	return "", false
}

// LastCalled returns the most recently called number or 0.
func (that *Game) LastCalled() int {
	if len(that.CalledNumbers) == 0 {
		return 0
	}

	return that.CalledNumbers[len(that.CalledNumbers)-1]
}

// Apply folds an update into the game the same way the store does.
func (that *Game) Apply(update *GameUpdate) {
	if update == nil {
		return
	}

	if that.Players == nil {
		that.Players = make(map[string]*PlayerState)
	}

	for id, player := range update.NewPlayers {
		cp := *player
		that.Players[id] = &cp
	}

	for id, marked := range update.MarkedGrids {
		if player, ok := that.Players[id]; ok {
			player.Marked = marked
		}
	}

	if update.CalledNumber != 0 && !that.IsCalled(update.CalledNumber) {
		that.CalledNumbers = append(that.CalledNumbers, update.CalledNumber)
	}

	if update.CurrentPlayer != "" {
		that.CurrentPlayer = update.CurrentPlayer
	}

	if update.Winner != "" {
		that.Winner = update.Winner
	}
}

// Clone returns a deep copy of the game.
func (that *Game) Clone() *Game {
	cp := *that
	cp.CalledNumbers = slices.Clone(that.CalledNumbers)
	cp.Players = make(map[string]*PlayerState, len(that.Players))
	for id, player := range that.Players {
		ps := *player
		cp.Players[id] = &ps
	}

	return &cp
}
