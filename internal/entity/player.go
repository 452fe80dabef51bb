package entity

const (
	RolePlayer1 = "player1"
	RolePlayer2 = "player2"
)

// Roles is the closed set of seat roles in seat order.
var Roles = [2]string{RolePlayer1, RolePlayer2}

// Player is a seat taken by one connection.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	PlayerID string `json:"playerId"`
}

// Scores counts wins per role.
type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// Credit adds a win to role. Unknown roles are ignored.
func (that *Scores) Credit(role string) {
	switch role {
	case RolePlayer1:
		that.Player1++
	case RolePlayer2:
		that.Player2++
	}
}

func (that Scores) Of(role string) int {
	switch role {
	case RolePlayer1:
		return that.Player1
	case RolePlayer2:
		return that.Player2
	default:
		return 0
	}
}
