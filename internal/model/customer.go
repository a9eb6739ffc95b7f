package model

import "github.com/google/uuid"

// Customer is a rental customer.  It has no relationship to other entities.
type Customer struct {
	ID     uuid.UUID `json:"_id"`
	Name   string    `json:"name"`
	IsGold bool      `json:"isGold"`
	Phone  string    `json:"phone"`
}

// CustomerInput is the create/replace payload for a customer.
type CustomerInput struct {
	Name   string `json:"name" validate:"required,min=5,max=50"`
	IsGold bool   `json:"isGold"`
	Phone  string `json:"phone" validate:"required,min=5,max=50"`
}
