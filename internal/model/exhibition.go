package model

import "time"

// DateLayout is the wire format of exhibition dates.
const DateLayout = time.DateOnly

// Exhibition represents an exhibition in the database.
type Exhibition struct {
	ID          int64
	Date        time.Time
	Category    string
	CustomerIDs []int64
}

// ExhibitionRequest represents an exhibition create or partial update request.
// Nil fields are left unchanged on update.
type ExhibitionRequest struct {
	Date        *string `json:"date"`
	Category    *string `json:"category"`
	CustomerIDs []int64 `json:"customerIds"`
}

// ExhibitionResponse is the wire representation of an exhibition.
type ExhibitionResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	CustomerIDs []int64 `json:"customerIds"`
}
