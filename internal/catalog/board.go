package catalog

import "github.com/mmynk/bithub/internal/models"

// Snapshot is a point-in-time view of everything the board is computed from.
type Snapshot struct {
	Bits    []models.Bit
	Users   []models.User
	Current *models.User
}

// View holds the viewer's presentation choices.
type View struct {
	Mode SortMode
}

// BoardView is everything derived from one snapshot.
type BoardView struct {
	Mode        SortMode
	Leaderboard []models.Bit
	MyBits      []models.Bit
	Owners      OwnerBoards
	MyStats     Stats
	GlobalStats Stats
}

// Board recomputes every derived view from snap. It keeps no state between
// calls, so the same snapshot and view always give the same board.
func Board(snap Snapshot, view View) BoardView {
	dir := NewDirectory(snap.Users)
	ranked := Rank(snap.Bits, view.Mode)

	var mine []models.Bit
	for _, bit := range ranked {
		if IsOwnedBy(bit, snap.Current, dir) {
			mine = append(mine, bit)
		}
	}

	return BoardView{
		Mode:        view.Mode,
		Leaderboard: ranked,
		MyBits:      mine,
		Owners:      AggregateByOwner(snap.Bits, dir),
		MyStats:     UserStats(snap.Bits, snap.Current, dir),
		GlobalStats: GlobalStats(snap.Bits),
	}
}
