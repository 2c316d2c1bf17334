package game

import "github.com/pkg/errors"

var (
	// ErrNoBank the current city has no bank.
	ErrNoBank = errors.New("no bank in this city")
	// ErrNoStore the current city has no weapon store.
	ErrNoStore = errors.New("no store in this city")
	// ErrUnknownWeapon the weapon is not sold here.
	ErrUnknownWeapon = errors.New("unknown weapon")
	// ErrUnknownCity the destination is not on the map.
	ErrUnknownCity = errors.New("unknown city")
	// ErrGameOver the game has ended and accepts no more actions.
	ErrGameOver = errors.New("game over")
)
