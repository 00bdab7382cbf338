package entity

// GameUpdate is a field-scoped change to a stored game. Only the fields that
// are set are written; everything else in the document is left alone.
type GameUpdate struct {
	NewPlayers    map[string]*PlayerState
	MarkedGrids   map[string]Marked
	CalledNumber  int
	CurrentPlayer string
	Winner        string
}

func (that *GameUpdate) AddPlayer(id string, player *PlayerState) *GameUpdate {
	if that.NewPlayers == nil {
		that.NewPlayers = make(map[string]*PlayerState)
	}
	that.NewPlayers[id] = player

	return that
}

func (that *GameUpdate) SetMarked(id string, marked Marked) *GameUpdate {
	if that.MarkedGrids == nil {
		that.MarkedGrids = make(map[string]Marked)
	}
	that.MarkedGrids[id] = marked

	return that
}

func (that *GameUpdate) IsEmpty() bool {
	return that == nil ||
		len(that.NewPlayers) == 0 &&
			len(that.MarkedGrids) == 0 &&
			that.CalledNumber == 0 &&
			that.CurrentPlayer == "" &&
			that.Winner == ""
}
