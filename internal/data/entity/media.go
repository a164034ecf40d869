package entity

import "github.com/google/uuid"

type Media struct {
	Base
	RoomID    uuid.UUID `db:"room_id"`
	Name      string    `db:"name"`
	Filename  string    `db:"filename"`
	Path      string    `db:"path"`
	URL       string    `db:"url"`
	Extension string    `db:"extension"`
	IsMain    bool      `db:"is_main"`
}
