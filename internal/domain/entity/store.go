package entity

import "time"

// Store representa una tienda (tenant). Todos los recursos cuelgan de una tienda.
type Store struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
