package club

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNoMaps       = errors.New("no maps in the pool")
	ErrMapExists    = errors.New("map already exists")
	ErrMapNotFound  = errors.New("map not found")
	ErrEmptyMapName = errors.New("map name is required")
)
