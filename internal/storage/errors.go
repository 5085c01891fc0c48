package storage

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrSlotTaken = errors.New("slot already booked")
)
