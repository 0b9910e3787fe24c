package storage

import "errors"

var ErrDuplicateGame = errors.New("game id already exists")
